package fhir_dto

type CapabilityStatement struct {
	ResourceType        string                    `json:"resourceType"`
	Name                string                    `json:"name,omitempty"`
	Title               string                    `json:"title,omitempty"`
	Status              string                    `json:"status"`
	Date                string                    `json:"date"`
	Publisher           string                    `json:"publisher,omitempty"`
	Kind                string                    `json:"kind"`
	Software            *CapabilitySoftware       `json:"software,omitempty"`
	Implementation      *CapabilityImplementation `json:"implementation,omitempty"`
	FhirVersion         string                    `json:"fhirVersion"`
	Format              []string                  `json:"format"`
	ImplementationGuide []string                  `json:"implementationGuide,omitempty"`
	Rest                []CapabilityRest          `json:"rest,omitempty"`
}

type CapabilitySoftware struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type CapabilityImplementation struct {
	Description string `json:"description"`
	Url         string `json:"url,omitempty"`
}

type CapabilityRest struct {
	Mode      string                `json:"mode"`
	Resource  []CapabilityResource  `json:"resource,omitempty"`
	Operation []CapabilityOperation `json:"operation,omitempty"`
}

type CapabilityResource struct {
	Type        string                  `json:"type"`
	Interaction []CapabilityInteraction `json:"interaction,omitempty"`
}

type CapabilityInteraction struct {
	Code string `json:"code"`
}

type CapabilityOperation struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
}
