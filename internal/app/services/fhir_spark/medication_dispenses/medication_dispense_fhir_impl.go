package medication_dispenses

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type medicationDispenseFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewMedicationDispenseFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.MedicationDispense] {
	return &medicationDispenseFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *medicationDispenseFhirClient) ResourceType() string {
	return constvars.ResourceMedicationDispense
}

func (c *medicationDispenseFhirClient) CreateUpdate(ctx context.Context, dispense *fhir_dto.MedicationDispense, bundle *fhir_dto.FHIRBundle) (*fhir_dto.MedicationDispense, error) {
	return upsert.Upsert[fhir_dto.MedicationDispense](ctx, c.engine, c, dispense, nil, bundle)
}

func (c *medicationDispenseFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.MedicationDispense](ctx, c.engine, c, raw, bundle)
}

// Resolve points subject at the Patient, each performer at the dispenser and
// authorizingPrescription at the MedicationRequests being fulfilled.
func (c *medicationDispenseFhirClient) Resolve(ctx context.Context, dispense *fhir_dto.MedicationDispense, scope upsert.Scope) error {
	if _, err := c.resolver.Resolve(ctx, dispense.Subject, scope, constvars.ResourcePatient); err != nil {
		return err
	}
	for i := range dispense.Performer {
		actor := &dispense.Performer[i].Actor
		targets := upsert.TargetsFor(actor, upsert.ProviderTargets,
			constvars.ResourcePractitionerRole, constvars.ResourcePractitioner, constvars.ResourceOrganization)
		if _, err := c.resolver.Resolve(ctx, actor, scope, targets...); err != nil {
			return err
		}
	}
	for i := range dispense.AuthorizingPrescription {
		if _, err := c.resolver.Resolve(ctx, &dispense.AuthorizingPrescription[i], scope, constvars.ResourceMedicationRequest); err != nil {
			return err
		}
	}
	return nil
}

func (c *medicationDispenseFhirClient) Validate(dispense *fhir_dto.MedicationDispense, found bool) error {
	return nil
}
