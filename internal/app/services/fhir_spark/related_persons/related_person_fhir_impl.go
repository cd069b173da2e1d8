package related_persons

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type relatedPersonFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewRelatedPersonFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.RelatedPerson] {
	return &relatedPersonFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *relatedPersonFhirClient) ResourceType() string {
	return constvars.ResourceRelatedPerson
}

func (c *relatedPersonFhirClient) CreateUpdate(ctx context.Context, person *fhir_dto.RelatedPerson, bundle *fhir_dto.FHIRBundle) (*fhir_dto.RelatedPerson, error) {
	return upsert.Upsert[fhir_dto.RelatedPerson](ctx, c.engine, c, person, nil, bundle)
}

func (c *relatedPersonFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.RelatedPerson](ctx, c.engine, c, raw, bundle)
}

func (c *relatedPersonFhirClient) Resolve(ctx context.Context, person *fhir_dto.RelatedPerson, scope upsert.Scope) error {
	_, err := c.resolver.Resolve(ctx, &person.Patient, scope, constvars.ResourcePatient)
	return err
}

func (c *relatedPersonFhirClient) Validate(person *fhir_dto.RelatedPerson, found bool) error {
	return nil
}
