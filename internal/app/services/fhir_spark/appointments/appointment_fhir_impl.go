package appointments

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type appointmentFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewAppointmentFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.Appointment] {
	return &appointmentFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *appointmentFhirClient) ResourceType() string {
	return constvars.ResourceAppointment
}

func (c *appointmentFhirClient) CreateUpdate(ctx context.Context, appointment *fhir_dto.Appointment, bundle *fhir_dto.FHIRBundle) (*fhir_dto.Appointment, error) {
	return upsert.Upsert[fhir_dto.Appointment](ctx, c.engine, c, appointment, nil, bundle)
}

func (c *appointmentFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.Appointment](ctx, c.engine, c, raw, bundle)
}

// Resolve points each participant actor at a Patient, Practitioner or
// Organization. Site-coded locations are left as logical references.
func (c *appointmentFhirClient) Resolve(ctx context.Context, appointment *fhir_dto.Appointment, scope upsert.Scope) error {
	for i := range appointment.Participant {
		actor := appointment.Participant[i].Actor
		targets := upsert.TargetsFor(actor, actorTargets,
			constvars.ResourcePatient, constvars.ResourcePractitioner, constvars.ResourceOrganization)
		if _, err := c.resolver.Resolve(ctx, actor, scope, targets...); err != nil {
			return err
		}
	}
	return nil
}

var actorTargets = map[string][]string{
	constvars.SystemNHSNumber:  {constvars.ResourcePatient},
	constvars.SystemCardiffMRN: {constvars.ResourcePatient},
	constvars.SystemGMCNumber:  {constvars.ResourcePractitioner},
	constvars.SystemGMPNumber:  {constvars.ResourcePractitioner},
	constvars.SystemODSCode:    {constvars.ResourceOrganization},
}

func (c *appointmentFhirClient) Validate(appointment *fhir_dto.Appointment, found bool) error {
	return nil
}
