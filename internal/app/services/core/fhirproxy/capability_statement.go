package fhirproxy

import (
	"time"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type ServerInfo struct {
	Name      string
	Version   string
	Publisher string
	BaseUrl   string
}

// CapabilityStatement describes the FHIR surface: the proxied types with the
// interactions they accept plus the $process-message operation.
func CapabilityStatement(info ServerInfo, proxied []string, started time.Time) *fhir_dto.CapabilityStatement {
	interactions := []fhir_dto.CapabilityInteraction{
		{Code: constvars.FhirInteractionRead},
		{Code: constvars.FhirInteractionSearchType},
		{Code: constvars.FhirInteractionCreate},
		{Code: constvars.FhirInteractionUpdate},
	}

	resources := make([]fhir_dto.CapabilityResource, 0, len(proxied))
	for _, resourceType := range proxied {
		resources = append(resources, fhir_dto.CapabilityResource{
			Type:        resourceType,
			Interaction: interactions,
		})
	}

	return &fhir_dto.CapabilityStatement{
		ResourceType: constvars.ResourceCapabilityStatement,
		Name:         info.Name,
		Title:        info.Name,
		Status:       constvars.FhirCapabilityStatusActive,
		Date:         started.UTC().Format(time.RFC3339),
		Publisher:    info.Publisher,
		Kind:         constvars.FhirCapabilityKindInstance,
		Software: &fhir_dto.CapabilitySoftware{
			Name:    info.Name,
			Version: info.Version,
		},
		Implementation: &fhir_dto.CapabilityImplementation{
			Description: constvars.ImplementationDescription,
			Url:         info.BaseUrl,
		},
		FhirVersion: constvars.FhirVersionR4,
		Format:      []string{constvars.MIMEApplicationFHIRJSON},
		ImplementationGuide: []string{
			constvars.ImplementationGuideUKCore,
			constvars.ImplementationGuideNHSDigital,
		},
		Rest: []fhir_dto.CapabilityRest{{
			Mode:     constvars.FhirRestModeServer,
			Resource: resources,
			Operation: []fhir_dto.CapabilityOperation{{
				Name:       constvars.FhirOperationProcessMessage,
				Definition: constvars.FhirOperationProcessMessageDef,
			}},
		}},
	}
}
