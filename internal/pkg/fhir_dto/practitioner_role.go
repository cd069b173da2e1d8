package fhir_dto

type PractitionerRole struct {
	DomainResource
	Active       *bool             `json:"active,omitempty"`
	Period       *Period           `json:"period,omitempty"`
	Practitioner *Reference        `json:"practitioner,omitempty"`
	Organization *Reference        `json:"organization,omitempty"`
	Code         []CodeableConcept `json:"code,omitempty"`
	Specialty    []CodeableConcept `json:"specialty,omitempty"`
	Location     []Reference       `json:"location,omitempty"`
	Telecom      []ContactPoint    `json:"telecom,omitempty"`
}

func NewPractitionerRole() *PractitionerRole {
	return &PractitionerRole{DomainResource: DomainResource{ResourceType: "PractitionerRole"}}
}
