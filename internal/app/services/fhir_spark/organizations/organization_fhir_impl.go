package organizations

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type organizationFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewOrganizationFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.Organization] {
	return &organizationFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *organizationFhirClient) ResourceType() string {
	return constvars.ResourceOrganization
}

func (c *organizationFhirClient) CreateUpdate(ctx context.Context, organization *fhir_dto.Organization, bundle *fhir_dto.FHIRBundle) (*fhir_dto.Organization, error) {
	return upsert.Upsert[fhir_dto.Organization](ctx, c.engine, c, organization, nil, bundle)
}

func (c *organizationFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.Organization](ctx, c.engine, c, raw, bundle)
}

func (c *organizationFhirClient) Resolve(ctx context.Context, organization *fhir_dto.Organization, scope upsert.Scope) error {
	_, err := c.resolver.Resolve(ctx, organization.PartOf, scope, constvars.ResourceOrganization)
	return err
}

func (c *organizationFhirClient) Validate(organization *fhir_dto.Organization, found bool) error {
	return nil
}
