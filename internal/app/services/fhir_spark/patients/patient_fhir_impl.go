package patients

import (
	"context"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type patientFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewPatientFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.Patient] {
	return &patientFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *patientFhirClient) ResourceType() string {
	return constvars.ResourcePatient
}

func (c *patientFhirClient) CreateUpdate(ctx context.Context, patient *fhir_dto.Patient, bundle *fhir_dto.FHIRBundle) (*fhir_dto.Patient, error) {
	return upsert.Upsert[fhir_dto.Patient](ctx, c.engine, c, patient, nil, bundle)
}

func (c *patientFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.Patient](ctx, c.engine, c, raw, bundle)
}

// Resolve points generalPractitioner at Organizations (ODS code) or
// Practitioners (GMC/GMP number) and link.other at Patients.
func (c *patientFhirClient) Resolve(ctx context.Context, patient *fhir_dto.Patient, scope upsert.Scope) error {
	for i := range patient.GeneralPractitioner {
		gp := &patient.GeneralPractitioner[i]
		targets := upsert.TargetsFor(gp, upsert.ProviderTargets, constvars.ResourceOrganization, constvars.ResourcePractitioner)
		if _, err := c.resolver.Resolve(ctx, gp, scope, targets...); err != nil {
			return err
		}
	}

	if _, err := c.resolver.Resolve(ctx, patient.ManagingOrganization, scope, constvars.ResourceOrganization); err != nil {
		return err
	}

	for i := range patient.Link {
		if _, err := c.resolver.Resolve(ctx, &patient.Link[i].Other, scope, constvars.ResourcePatient); err != nil {
			return err
		}
	}
	return nil
}

// Validate requires a new Patient to reference a GP practice stored on the
// repository. An ODS code that resolution could not match does not count.
func (c *patientFhirClient) Validate(patient *fhir_dto.Patient, found bool) error {
	if found {
		return nil
	}
	for _, gp := range patient.GeneralPractitioner {
		if strings.HasPrefix(gp.Reference, constvars.ResourceOrganization+"/") {
			return nil
		}
	}

	c.Log.Debug("patientFhirClient.Validate patient has no general practitioner organization",
		zap.Int(constvars.LoggingCountKey, len(patient.GeneralPractitioner)),
	)
	return exceptions.ErrUnprocessableEntity(nil, constvars.ErrDevFHIRMissingGP)
}
