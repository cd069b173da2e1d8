package upsert

import (
	"context"
	"sort"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

// Registry maps resource type names to their upsert client. It is filled
// during bootstrap and only read afterwards.
type Registry struct {
	upsertables map[string]contracts.Upsertable
	Log         *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		upsertables: make(map[string]contracts.Upsertable),
		Log:         logger,
	}
}

// Register adds u, replacing any client registered for the same type.
func (r *Registry) Register(upsertables ...contracts.Upsertable) {
	for _, u := range upsertables {
		r.upsertables[u.ResourceType()] = u
	}
}

func (r *Registry) Lookup(resourceType string) (contracts.Upsertable, bool) {
	u, ok := r.upsertables[resourceType]
	return u, ok
}

func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.upsertables))
	for resourceType := range r.upsertables {
		types = append(types, resourceType)
	}
	sort.Strings(types)
	return types
}

// CreateUpdateRaw upserts raw through the client registered for its
// resourceType.
func (r *Registry) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	header, err := fhir_dto.ProbeResource(raw)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	u, ok := r.Lookup(header.ResourceType)
	if !ok {
		err := exceptions.ErrUnsupportedResource(nil, header.ResourceType)
		r.Log.Error("upsert.Registry.CreateUpdateRaw no client for resource type",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingResourceTypeKey, header.ResourceType),
			zap.Error(err),
		)
		return nil, err
	}
	return u.CreateUpdateRaw(ctx, raw, bundle)
}
