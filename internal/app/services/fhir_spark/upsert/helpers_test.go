package upsert_test

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/fhirtest"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/retry"
)

const nhsNumber = "9449305552"

var fastPolicy = retry.Policy{
	MaxAttempts:     3,
	InitialInterval: time.Millisecond,
	MaxInterval:     2 * time.Millisecond,
}

type harness struct {
	server   *fhirtest.Server
	audit    *fhirtest.AuditRecorder
	engine   *upsert.Engine
	registry *upsert.Registry
	resolver *upsert.Resolver
	patients *patientCollaborator
}

type harnessOptions struct {
	locker contracts.LockerService
	cache  contracts.RedisRepository
}

func newHarness(t *testing.T, opts harnessOptions) *harness {
	t.Helper()
	server := fhirtest.NewServer()
	t.Cleanup(server.Close)

	audit := &fhirtest.AuditRecorder{}
	engine := upsert.NewEngine(server.Client(), opts.locker, audit, opts.cache, upsert.Config{
		Policy:   fastPolicy,
		LockWait: 200 * time.Millisecond,
	}, zap.NewNop())
	registry := upsert.NewRegistry(zap.NewNop())
	resolver := upsert.NewResolver(engine, registry)

	patients := &patientCollaborator{engine: engine, resolver: resolver}
	registry.Register(patients, &organizationCollaborator{engine: engine})

	return &harness{
		server:   server,
		audit:    audit,
		engine:   engine,
		registry: registry,
		resolver: resolver,
		patients: patients,
	}
}

type patientCollaborator struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	validate func(patient *fhir_dto.Patient, found bool) error
}

func (c *patientCollaborator) ResourceType() string { return constvars.ResourcePatient }

func (c *patientCollaborator) Resolve(ctx context.Context, patient *fhir_dto.Patient, scope upsert.Scope) error {
	for i := range patient.GeneralPractitioner {
		gp := &patient.GeneralPractitioner[i]
		targets := upsert.TargetsFor(gp, upsert.ProviderTargets, constvars.ResourceOrganization)
		if _, err := c.resolver.Resolve(ctx, gp, scope, targets...); err != nil {
			return err
		}
	}
	return nil
}

func (c *patientCollaborator) Validate(patient *fhir_dto.Patient, found bool) error {
	if c.validate == nil {
		return nil
	}
	return c.validate(patient, found)
}

func (c *patientCollaborator) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.Patient](ctx, c.engine, c, raw, bundle)
}

type organizationCollaborator struct {
	engine *upsert.Engine
}

func (c *organizationCollaborator) ResourceType() string { return constvars.ResourceOrganization }

func (c *organizationCollaborator) Resolve(ctx context.Context, organization *fhir_dto.Organization, scope upsert.Scope) error {
	return nil
}

func (c *organizationCollaborator) Validate(organization *fhir_dto.Organization, found bool) error {
	return nil
}

func (c *organizationCollaborator) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.Organization](ctx, c.engine, c, raw, bundle)
}

func nhsPatient() *fhir_dto.Patient {
	patient := fhir_dto.NewPatient()
	patient.AddIdentifier(fhir_dto.Identifier{System: constvars.SystemNHSNumber, Value: nhsNumber})
	patient.Name = []fhir_dto.HumanName{{Family: "XXTESTPATIENT-TGNP", Given: []string{"DONOTUSE"}}}
	return patient
}

type mockLocker struct {
	mock.Mock
}

func (m *mockLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *mockLocker) Unlock(ctx context.Context, key, token string) error {
	args := m.Called(ctx, key, token)
	return args.Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) CompareAndDelete(ctx context.Context, key string, value interface{}) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}
