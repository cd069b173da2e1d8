package fhir_dto

type MedicationRequest struct {
	DomainResource
	Status                    string            `json:"status,omitempty"`
	Intent                    string            `json:"intent,omitempty"`
	Category                  []CodeableConcept `json:"category,omitempty"`
	Priority                  string            `json:"priority,omitempty"`
	MedicationCodeableConcept *CodeableConcept  `json:"medicationCodeableConcept,omitempty"`
	MedicationReference       *Reference        `json:"medicationReference,omitempty"`
	Subject                   *Reference        `json:"subject,omitempty"`
	Encounter                 *Reference        `json:"encounter,omitempty"`
	AuthoredOn                string            `json:"authoredOn,omitempty"`
	Requester                 *Reference        `json:"requester,omitempty"`
	Performer                 *Reference        `json:"performer,omitempty"`
	Recorder                  *Reference        `json:"recorder,omitempty"`
	GroupIdentifier           *Identifier       `json:"groupIdentifier,omitempty"`
	CourseOfTherapyType       *CodeableConcept  `json:"courseOfTherapyType,omitempty"`
	Note                      []Annotation      `json:"note,omitempty"`
	DosageInstruction         []Dosage          `json:"dosageInstruction,omitempty"`
}

type Dosage struct {
	Sequence int    `json:"sequence,omitempty"`
	Text     string `json:"text,omitempty"`
}
