package encounters

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type encounterFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewEncounterFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.Encounter] {
	return &encounterFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *encounterFhirClient) ResourceType() string {
	return constvars.ResourceEncounter
}

func (c *encounterFhirClient) CreateUpdate(ctx context.Context, encounter *fhir_dto.Encounter, bundle *fhir_dto.FHIRBundle) (*fhir_dto.Encounter, error) {
	return upsert.Upsert[fhir_dto.Encounter](ctx, c.engine, c, encounter, nil, bundle)
}

func (c *encounterFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.Encounter](ctx, c.engine, c, raw, bundle)
}

func (c *encounterFhirClient) Resolve(ctx context.Context, encounter *fhir_dto.Encounter, scope upsert.Scope) error {
	if _, err := c.resolver.Resolve(ctx, encounter.Subject, scope, constvars.ResourcePatient); err != nil {
		return err
	}
	if _, err := c.resolver.Resolve(ctx, encounter.ServiceProvider, scope, constvars.ResourceOrganization); err != nil {
		return err
	}
	for i := range encounter.Participant {
		if _, err := c.resolver.Resolve(ctx, encounter.Participant[i].Individual, scope, constvars.ResourcePractitioner); err != nil {
			return err
		}
	}
	return nil
}

func (c *encounterFhirClient) Validate(encounter *fhir_dto.Encounter, found bool) error {
	return nil
}
