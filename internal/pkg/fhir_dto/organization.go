package fhir_dto

type Organization struct {
	DomainResource
	Active  *bool             `json:"active,omitempty"`
	Type    []CodeableConcept `json:"type,omitempty"`
	Name    string            `json:"name,omitempty"`
	Alias   []string          `json:"alias,omitempty"`
	Telecom []ContactPoint    `json:"telecom,omitempty"`
	Address []Address         `json:"address,omitempty"`
	PartOf  *Reference        `json:"partOf,omitempty"`
}

func NewOrganization() *Organization {
	return &Organization{DomainResource: DomainResource{ResourceType: "Organization"}}
}
