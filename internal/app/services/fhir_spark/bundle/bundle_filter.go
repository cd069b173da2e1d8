package bundle

import (
	"github.com/goccy/go-json"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

// FilterResources returns the entry resources whose resourceType is exactly
// resourceType, in bundle order. Contained resources are not inspected.
func FilterResources(b *fhir_dto.FHIRBundle, resourceType string) []json.RawMessage {
	if b == nil {
		return nil
	}
	var resources []json.RawMessage
	for _, entry := range b.Entry {
		if entry.EntryResourceType() == resourceType {
			resources = append(resources, entry.Resource)
		}
	}
	return resources
}

// FindResource looks reference up in two passes: first an entry of
// resourceType whose fullUrl equals reference, then, only when no entry
// matched, a contained resource anywhere in the bundle whose id equals
// reference.
func FindResource(b *fhir_dto.FHIRBundle, resourceType, reference string) json.RawMessage {
	if b == nil || reference == "" {
		return nil
	}

	for _, entry := range b.Entry {
		if entry.FullUrl == reference && entry.EntryResourceType() == resourceType {
			return entry.Resource
		}
	}

	for _, entry := range b.Entry {
		if len(entry.Resource) == 0 {
			continue
		}
		header, err := fhir_dto.ProbeResource(entry.Resource)
		if err != nil {
			continue
		}
		if contained := FindContained(header.Contained, reference); contained != nil {
			return contained
		}
	}
	return nil
}

// FindContained returns the contained resource addressed by reference, which
// may be given with or without the leading '#'.
func FindContained(contained []json.RawMessage, reference string) json.RawMessage {
	if reference == "" {
		return nil
	}
	for _, raw := range contained {
		header, err := fhir_dto.ProbeResource(raw)
		if err != nil || header.ID == "" {
			continue
		}
		if header.ID == reference || "#"+header.ID == reference {
			return raw
		}
	}
	return nil
}

// UpdateReference points ref at the persisted resource resourceType/id. The
// identifier is added only when ref has none, stripped of extensions.
func UpdateReference(ref *fhir_dto.Reference, identifier *fhir_dto.Identifier, resourceType, id string) {
	if ref == nil || id == "" {
		return
	}
	ref.Reference = resourceType + "/" + id
	if !ref.Identifier.HasValue() && identifier.HasValue() {
		clean := *identifier
		clean.Extension = nil
		ref.Identifier = &clean
	}
}
