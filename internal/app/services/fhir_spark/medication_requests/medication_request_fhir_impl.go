package medication_requests

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type medicationRequestFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewMedicationRequestFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.MedicationRequest] {
	return &medicationRequestFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *medicationRequestFhirClient) ResourceType() string {
	return constvars.ResourceMedicationRequest
}

func (c *medicationRequestFhirClient) CreateUpdate(ctx context.Context, request *fhir_dto.MedicationRequest, bundle *fhir_dto.FHIRBundle) (*fhir_dto.MedicationRequest, error) {
	return upsert.Upsert[fhir_dto.MedicationRequest](ctx, c.engine, c, request, nil, bundle)
}

func (c *medicationRequestFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.MedicationRequest](ctx, c.engine, c, raw, bundle)
}

// Resolve points subject at the Patient and requester at the prescriber.
func (c *medicationRequestFhirClient) Resolve(ctx context.Context, request *fhir_dto.MedicationRequest, scope upsert.Scope) error {
	if _, err := c.resolver.Resolve(ctx, request.Subject, scope, constvars.ResourcePatient); err != nil {
		return err
	}
	targets := upsert.TargetsFor(request.Requester, upsert.ProviderTargets,
		constvars.ResourcePractitionerRole, constvars.ResourcePractitioner, constvars.ResourceOrganization)
	if _, err := c.resolver.Resolve(ctx, request.Requester, scope, targets...); err != nil {
		return err
	}
	return nil
}

func (c *medicationRequestFhirClient) Validate(request *fhir_dto.MedicationRequest, found bool) error {
	return nil
}
