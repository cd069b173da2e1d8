package diagnostic_reports

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

type diagnosticReportFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewDiagnosticReportFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.DiagnosticReport] {
	return &diagnosticReportFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *diagnosticReportFhirClient) ResourceType() string {
	return constvars.ResourceDiagnosticReport
}

func (c *diagnosticReportFhirClient) CreateUpdate(ctx context.Context, report *fhir_dto.DiagnosticReport, bundle *fhir_dto.FHIRBundle) (*fhir_dto.DiagnosticReport, error) {
	return upsert.Upsert[fhir_dto.DiagnosticReport](ctx, c.engine, c, report, nil, bundle)
}

func (c *diagnosticReportFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.DiagnosticReport](ctx, c.engine, c, raw, bundle)
}

// Resolve writes the result Observations carried with the report, contained
// or in the bundle, before the report itself, and points result at them.
func (c *diagnosticReportFhirClient) Resolve(ctx context.Context, report *fhir_dto.DiagnosticReport, scope upsert.Scope) error {
	if _, err := c.resolver.Resolve(ctx, report.Subject, scope, constvars.ResourcePatient); err != nil {
		return err
	}
	if _, err := c.resolver.Resolve(ctx, report.Encounter, scope, constvars.ResourceEncounter); err != nil {
		return err
	}
	for i := range report.BasedOn {
		if _, err := c.resolver.Resolve(ctx, &report.BasedOn[i], scope, constvars.ResourceServiceRequest); err != nil {
			return err
		}
	}
	for i := range report.Performer {
		performer := &report.Performer[i]
		targets := upsert.TargetsFor(performer, upsert.ProviderTargets, constvars.ResourcePractitioner, constvars.ResourceOrganization)
		if _, err := c.resolver.Resolve(ctx, performer, scope, targets...); err != nil {
			return err
		}
	}

	written := 0
	for i := range report.Result {
		ok, err := c.resolver.Upsert(ctx, &report.Result[i], scope, constvars.ResourceObservation)
		if err != nil {
			c.Log.Error("diagnosticReportFhirClient.Resolve error writing result observation",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingReferenceKey, report.Result[i].Reference),
				zap.Error(err),
			)
			return err
		}
		if ok {
			written++
		}
	}

	c.Log.Debug("diagnosticReportFhirClient.Resolve results resolved",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.Int(constvars.LoggingCountKey, written),
	)
	return nil
}

func (c *diagnosticReportFhirClient) Validate(report *fhir_dto.DiagnosticReport, found bool) error {
	return nil
}
