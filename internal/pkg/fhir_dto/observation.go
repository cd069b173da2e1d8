package fhir_dto

type Observation struct {
	DomainResource
	BasedOn              []Reference                 `json:"basedOn,omitempty"`
	Status               string                      `json:"status,omitempty"`
	Category             []CodeableConcept           `json:"category,omitempty"`
	Code                 *CodeableConcept            `json:"code,omitempty"`
	Subject              *Reference                  `json:"subject,omitempty"`
	Encounter            *Reference                  `json:"encounter,omitempty"`
	EffectiveDateTime    string                      `json:"effectiveDateTime,omitempty"`
	Issued               string                      `json:"issued,omitempty"`
	Performer            []Reference                 `json:"performer,omitempty"`
	ValueQuantity        *Quantity                   `json:"valueQuantity,omitempty"`
	ValueCodeableConcept *CodeableConcept            `json:"valueCodeableConcept,omitempty"`
	ValueString          string                      `json:"valueString,omitempty"`
	Interpretation       []CodeableConcept           `json:"interpretation,omitempty"`
	Note                 []Annotation                `json:"note,omitempty"`
	Specimen             *Reference                  `json:"specimen,omitempty"`
	ReferenceRange       []ObservationReferenceRange `json:"referenceRange,omitempty"`
	HasMember            []Reference                 `json:"hasMember,omitempty"`
	DerivedFrom          []Reference                 `json:"derivedFrom,omitempty"`
}

type ObservationReferenceRange struct {
	Low  *Quantity `json:"low,omitempty"`
	High *Quantity `json:"high,omitempty"`
	Text string    `json:"text,omitempty"`
}

func NewObservation() *Observation {
	return &Observation{DomainResource: DomainResource{ResourceType: "Observation"}}
}
