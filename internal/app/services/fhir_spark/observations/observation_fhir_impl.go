package observations

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type observationFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewObservationFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.Observation] {
	return &observationFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *observationFhirClient) ResourceType() string {
	return constvars.ResourceObservation
}

func (c *observationFhirClient) CreateUpdate(ctx context.Context, observation *fhir_dto.Observation, bundle *fhir_dto.FHIRBundle) (*fhir_dto.Observation, error) {
	return upsert.Upsert[fhir_dto.Observation](ctx, c.engine, c, observation, nil, bundle)
}

func (c *observationFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.Observation](ctx, c.engine, c, raw, bundle)
}

// Resolve points subject at the Patient and performer at the recording
// clinician or laboratory.
func (c *observationFhirClient) Resolve(ctx context.Context, observation *fhir_dto.Observation, scope upsert.Scope) error {
	if _, err := c.resolver.Resolve(ctx, observation.Subject, scope, constvars.ResourcePatient); err != nil {
		return err
	}
	if _, err := c.resolver.Resolve(ctx, observation.Encounter, scope, constvars.ResourceEncounter); err != nil {
		return err
	}
	for i := range observation.Performer {
		performer := &observation.Performer[i]
		targets := upsert.TargetsFor(performer, upsert.ProviderTargets, constvars.ResourcePractitioner, constvars.ResourceOrganization)
		if _, err := c.resolver.Resolve(ctx, performer, scope, targets...); err != nil {
			return err
		}
	}
	return nil
}

func (c *observationFhirClient) Validate(observation *fhir_dto.Observation, found bool) error {
	return nil
}
