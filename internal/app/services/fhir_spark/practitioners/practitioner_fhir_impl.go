package practitioners

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type practitionerFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewPractitionerFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.Practitioner] {
	return &practitionerFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *practitionerFhirClient) ResourceType() string {
	return constvars.ResourcePractitioner
}

func (c *practitionerFhirClient) CreateUpdate(ctx context.Context, practitioner *fhir_dto.Practitioner, bundle *fhir_dto.FHIRBundle) (*fhir_dto.Practitioner, error) {
	return upsert.Upsert[fhir_dto.Practitioner](ctx, c.engine, c, practitioner, nil, bundle)
}

func (c *practitionerFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.Practitioner](ctx, c.engine, c, raw, bundle)
}

// Practitioners reference nothing the engine resolves.
func (c *practitionerFhirClient) Resolve(ctx context.Context, practitioner *fhir_dto.Practitioner, scope upsert.Scope) error {
	return nil
}

func (c *practitionerFhirClient) Validate(practitioner *fhir_dto.Practitioner, found bool) error {
	return nil
}
