package tasks

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

var focusTargets = map[string][]string{
	constvars.SystemUBRN: {constvars.ResourceServiceRequest},
}

var partyTargets = map[string][]string{
	constvars.SystemNHSNumber: {constvars.ResourcePatient},
	constvars.SystemODSCode:   {constvars.ResourceOrganization},
	constvars.SystemGMCNumber: {constvars.ResourcePractitioner},
	constvars.SystemGMPNumber: {constvars.ResourcePractitioner},
}

type taskFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewTaskFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.Task] {
	return &taskFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *taskFhirClient) ResourceType() string {
	return constvars.ResourceTask
}

func (c *taskFhirClient) CreateUpdate(ctx context.Context, task *fhir_dto.Task, bundle *fhir_dto.FHIRBundle) (*fhir_dto.Task, error) {
	return upsert.Upsert[fhir_dto.Task](ctx, c.engine, c, task, nil, bundle)
}

func (c *taskFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.Task](ctx, c.engine, c, raw, bundle)
}

// Resolve handles requester (GMC/GMP Practitioner or ODS Organization),
// focus (the ServiceRequest a UBRN names) and for/owner, which are tried as
// Patient, then Organization, then Practitioner.
func (c *taskFhirClient) Resolve(ctx context.Context, task *fhir_dto.Task, scope upsert.Scope) error {
	requesterTargets := upsert.TargetsFor(task.Requester, upsert.ProviderTargets,
		constvars.ResourcePractitioner, constvars.ResourceOrganization)
	if _, err := c.resolver.Resolve(ctx, task.Requester, scope, requesterTargets...); err != nil {
		return err
	}

	focus := upsert.TargetsFor(task.Focus, focusTargets, constvars.ResourceServiceRequest, constvars.ResourceMedicationRequest)
	if _, err := c.resolver.Resolve(ctx, task.Focus, scope, focus...); err != nil {
		return err
	}

	for _, party := range []*fhir_dto.Reference{task.For, task.Owner} {
		targets := upsert.TargetsFor(party, partyTargets)
		if len(targets) == 0 {
			targets = []string{constvars.ResourcePatient, constvars.ResourceOrganization, constvars.ResourcePractitioner}
		}
		if _, err := c.resolver.Resolve(ctx, party, scope, targets...); err != nil {
			return err
		}
	}
	return nil
}

func (c *taskFhirClient) Validate(task *fhir_dto.Task, found bool) error {
	return nil
}
