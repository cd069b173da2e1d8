package fhir_dto

type Specimen struct {
	DomainResource
	AccessionIdentifier *Identifier         `json:"accessionIdentifier,omitempty"`
	Status              string              `json:"status,omitempty"`
	Type                *CodeableConcept    `json:"type,omitempty"`
	Subject             *Reference          `json:"subject,omitempty"`
	ReceivedTime        string              `json:"receivedTime,omitempty"`
	Collection          *SpecimenCollection `json:"collection,omitempty"`
}

type SpecimenCollection struct {
	CollectedDateTime string  `json:"collectedDateTime,omitempty"`
	CollectedPeriod   *Period `json:"collectedPeriod,omitempty"`
}

func NewSpecimen() *Specimen {
	return &Specimen{DomainResource: DomainResource{ResourceType: "Specimen"}}
}
