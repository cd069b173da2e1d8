package service_requests

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type serviceRequestFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewServiceRequestFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.ServiceRequest] {
	return &serviceRequestFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *serviceRequestFhirClient) ResourceType() string {
	return constvars.ResourceServiceRequest
}

func (c *serviceRequestFhirClient) CreateUpdate(ctx context.Context, request *fhir_dto.ServiceRequest, bundle *fhir_dto.FHIRBundle) (*fhir_dto.ServiceRequest, error) {
	return upsert.Upsert[fhir_dto.ServiceRequest](ctx, c.engine, c, request, nil, bundle)
}

func (c *serviceRequestFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.ServiceRequest](ctx, c.engine, c, raw, bundle)
}

func (c *serviceRequestFhirClient) Resolve(ctx context.Context, request *fhir_dto.ServiceRequest, scope upsert.Scope) error {
	if _, err := c.resolver.Resolve(ctx, request.Subject, scope, constvars.ResourcePatient); err != nil {
		return err
	}

	providers := []string{constvars.ResourcePractitionerRole, constvars.ResourcePractitioner, constvars.ResourceOrganization}
	if _, err := c.resolver.Resolve(ctx, request.Requester, scope, upsert.TargetsFor(request.Requester, upsert.ProviderTargets, providers...)...); err != nil {
		return err
	}
	for i := range request.Performer {
		performer := &request.Performer[i]
		if _, err := c.resolver.Resolve(ctx, performer, scope, upsert.TargetsFor(performer, upsert.ProviderTargets, providers...)...); err != nil {
			return err
		}
	}
	return nil
}

func (c *serviceRequestFhirClient) Validate(request *fhir_dto.ServiceRequest, found bool) error {
	return nil
}
