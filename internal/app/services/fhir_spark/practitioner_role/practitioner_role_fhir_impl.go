package practitioner_role

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type practitionerRoleFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewPractitionerRoleFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.PractitionerRole] {
	return &practitionerRoleFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *practitionerRoleFhirClient) ResourceType() string {
	return constvars.ResourcePractitionerRole
}

func (c *practitionerRoleFhirClient) CreateUpdate(ctx context.Context, role *fhir_dto.PractitionerRole, bundle *fhir_dto.FHIRBundle) (*fhir_dto.PractitionerRole, error) {
	return upsert.Upsert[fhir_dto.PractitionerRole](ctx, c.engine, c, role, nil, bundle)
}

func (c *practitionerRoleFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.PractitionerRole](ctx, c.engine, c, raw, bundle)
}

func (c *practitionerRoleFhirClient) Resolve(ctx context.Context, role *fhir_dto.PractitionerRole, scope upsert.Scope) error {
	if _, err := c.resolver.Resolve(ctx, role.Practitioner, scope, constvars.ResourcePractitioner); err != nil {
		return err
	}
	_, err := c.resolver.Resolve(ctx, role.Organization, scope, constvars.ResourceOrganization)
	return err
}

func (c *practitionerRoleFhirClient) Validate(role *fhir_dto.PractitionerRole, found bool) error {
	return nil
}
