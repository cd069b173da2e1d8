package fhir_dto

type Patient struct {
	DomainResource
	Active               *bool          `json:"active,omitempty"`
	Name                 []HumanName    `json:"name,omitempty"`
	Telecom              []ContactPoint `json:"telecom,omitempty"`
	Gender               string         `json:"gender,omitempty"`
	BirthDate            string         `json:"birthDate,omitempty"`
	DeceasedDateTime     string         `json:"deceasedDateTime,omitempty"`
	Address              []Address      `json:"address,omitempty"`
	GeneralPractitioner  []Reference    `json:"generalPractitioner,omitempty"`
	ManagingOrganization *Reference     `json:"managingOrganization,omitempty"`
	Link                 []PatientLink  `json:"link,omitempty"`
}

type PatientLink struct {
	Other Reference `json:"other"`
	Type  string    `json:"type,omitempty"`
}

func NewPatient() *Patient {
	return &Patient{DomainResource: DomainResource{ResourceType: "Patient"}}
}

// IdentifierBySystem returns the first identifier with the given system.
func (p *Patient) IdentifierBySystem(system string) *Identifier {
	for i := range p.Identifier {
		if p.Identifier[i].System == system {
			return &p.Identifier[i]
		}
	}
	return nil
}
