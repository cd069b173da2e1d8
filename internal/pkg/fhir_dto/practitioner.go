package fhir_dto

type Practitioner struct {
	DomainResource
	Active    *bool          `json:"active,omitempty"`
	Name      []HumanName    `json:"name,omitempty"`
	Telecom   []ContactPoint `json:"telecom,omitempty"`
	Address   []Address      `json:"address,omitempty"`
	Gender    string         `json:"gender,omitempty"`
	BirthDate string         `json:"birthDate,omitempty"`
}

func NewPractitioner() *Practitioner {
	return &Practitioner{DomainResource: DomainResource{ResourceType: "Practitioner"}}
}
