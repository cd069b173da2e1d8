package upsert

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/bundle"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

// Scope is what travelled with the resource being upserted: the bundle it
// came in, if any, and its own contained resources.
type Scope struct {
	Bundle    *fhir_dto.FHIRBundle
	Contained []json.RawMessage
}

// Find returns the resource of resourceType that reference addresses within
// the scope, or nil.
func (s Scope) Find(resourceType, reference string) json.RawMessage {
	if raw := bundle.FindResource(s.Bundle, resourceType, reference); raw != nil {
		if header, err := fhir_dto.ProbeResource(raw); err == nil && header.ResourceType == resourceType {
			return raw
		}
	}
	if raw := bundle.FindContained(s.Contained, reference); raw != nil {
		if header, err := fhir_dto.ProbeResource(raw); err == nil && header.ResourceType == resourceType {
			return raw
		}
	}
	return nil
}

// ProviderTargets maps the identifier systems of care providers to the
// resource types they identify.
var ProviderTargets = map[string][]string{
	constvars.SystemGMCNumber: {constvars.ResourcePractitioner},
	constvars.SystemGMPNumber: {constvars.ResourcePractitioner},
	constvars.SystemODSCode:   {constvars.ResourceOrganization},
}

// TargetsFor picks the resource types ref may point at. An explicit type
// wins, then the identifier system; a reference with an identifier of an
// unmapped system gets no targets. fallback applies to plain references.
func TargetsFor(ref *fhir_dto.Reference, bySystem map[string][]string, fallback ...string) []string {
	if ref == nil {
		return nil
	}
	if ref.Type != "" {
		return []string{ref.Type}
	}
	if ref.Identifier.HasValue() {
		return bySystem[ref.Identifier.System]
	}
	return fallback
}

// isLiteral reports whether reference already names a persisted resource as
// Type/id.
func isLiteral(reference string) bool {
	if reference == "" || strings.HasPrefix(reference, "#") || strings.HasPrefix(reference, "urn:") {
		return false
	}
	return strings.Contains(reference, "/")
}
