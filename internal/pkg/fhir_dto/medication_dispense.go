package fhir_dto

type MedicationDispense struct {
	DomainResource
	PartOf                    []Reference                   `json:"partOf,omitempty"`
	Status                    string                        `json:"status,omitempty"`
	Category                  *CodeableConcept              `json:"category,omitempty"`
	MedicationCodeableConcept *CodeableConcept              `json:"medicationCodeableConcept,omitempty"`
	MedicationReference       *Reference                    `json:"medicationReference,omitempty"`
	Subject                   *Reference                    `json:"subject,omitempty"`
	Context                   *Reference                    `json:"context,omitempty"`
	Performer                 []MedicationDispensePerformer `json:"performer,omitempty"`
	Location                  *Reference                    `json:"location,omitempty"`
	AuthorizingPrescription   []Reference                   `json:"authorizingPrescription,omitempty"`
	Type                      *CodeableConcept              `json:"type,omitempty"`
	Quantity                  *Quantity                     `json:"quantity,omitempty"`
	WhenPrepared              string                        `json:"whenPrepared,omitempty"`
	WhenHandedOver            string                        `json:"whenHandedOver,omitempty"`
	Receiver                  []Reference                   `json:"receiver,omitempty"`
	Note                      []Annotation                  `json:"note,omitempty"`
	DosageInstruction         []Dosage                      `json:"dosageInstruction,omitempty"`
}

type MedicationDispensePerformer struct {
	Function *CodeableConcept `json:"function,omitempty"`
	Actor    Reference        `json:"actor"`
}
