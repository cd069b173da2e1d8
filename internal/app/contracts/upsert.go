package contracts

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

// Upsertable creates or updates one resource type on the clinical data
// repository, deduplicating by business identifier.
type Upsertable interface {
	ResourceType() string
	// CreateUpdateRaw upserts raw. bundle, when not nil, is used to resolve
	// references to resources carried alongside raw.
	CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error)
}

type UpsertRegistry interface {
	Lookup(resourceType string) (Upsertable, bool)
	Types() []string
	CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error)
}

// UpsertClient is the typed face of an Upsertable.
type UpsertClient[PT fhir_dto.Resource] interface {
	Upsertable
	CreateUpdate(ctx context.Context, resource PT, bundle *fhir_dto.FHIRBundle) (PT, error)
}

// BinaryClient stores Binary payloads that travel inside bundles.
type BinaryClient interface {
	Create(ctx context.Context, binary *fhir_dto.Binary) (*fhir_dto.Binary, error)
	// AttachBinaries creates every bundled Binary the document's attachments
	// point at and repoints the attachment urls at the stored copies. It
	// returns the Binary/<id> locations it wrote.
	AttachBinaries(ctx context.Context, document *fhir_dto.DocumentReference, bundle *fhir_dto.FHIRBundle) ([]string, error)
}
