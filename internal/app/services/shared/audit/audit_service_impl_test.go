package audit

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event *fhir_dto.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

var testSource = Source{
	Name:       "Trust Integration Engine",
	Version:    "1.2.0",
	BaseUrl:    "https://tie.example.nhs.uk",
	CDRBaseUrl: "https://cdr.example.nhs.uk/FHIR/R4/",
}

func TestBuildAuditEvent(t *testing.T) {
	recorded := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

	t.Run("patient create", func(t *testing.T) {
		event := BuildAuditEvent(testSource, contracts.AuditEntry{
			Action:       fhir_dto.AuditEventActionCreate,
			ResourceType: constvars.ResourcePatient,
			ResourceID:   "abc",
		}, recorded)

		assert.Equal(t, constvars.ResourceAuditEvent, event.ResourceType)
		assert.Equal(t, constvars.AuditTypeTransmit, event.Type.Code)
		assert.Equal(t, constvars.SystemISOEHREvents, event.Type.System)
		assert.Equal(t, "C", event.Action)
		assert.Equal(t, "0", event.Outcome)
		assert.Equal(t, "2024-05-01T10:30:00Z", event.Recorded)

		assert.Equal(t, constvars.ResourceDevice, event.Source.Observer.Type)
		assert.Equal(t, "Trust Integration Engine 1.2.0 https://tie.example.nhs.uk", event.Source.Observer.Display)

		require.Len(t, event.Agent, 2)
		assert.True(t, event.Agent[0].Requestor)
		assert.Equal(t, "110150", event.Agent[0].Type.FirstCode())
		assert.Equal(t, "PAT", event.Agent[1].Type.FirstCode())
		assert.Equal(t, "Patient/abc", event.Agent[1].Who.Reference)

		require.Len(t, event.Entity, 1)
		assert.Equal(t, "Patient/abc", event.Entity[0].What.Reference)
		assert.Equal(t, "https://cdr.example.nhs.uk/FHIR/R4/Patient", event.Entity[0].Detail[0].ValueString)
		assert.Equal(t, "Patient", event.Entity[0].Detail[1].ValueString)
	})

	t.Run("failed update of another resource", func(t *testing.T) {
		event := BuildAuditEvent(testSource, contracts.AuditEntry{
			Action:       fhir_dto.AuditEventActionUpdate,
			ResourceType: constvars.ResourceTask,
			Err:          errors.New("upstream 502"),
		}, recorded)

		assert.Equal(t, "U", event.Action)
		assert.Equal(t, "8", event.Outcome)
		assert.Equal(t, "upstream 502", event.OutcomeDesc)
		assert.Len(t, event.Agent, 1)
		assert.Nil(t, event.Entity[0].What)
	})
}

func TestAuditServiceRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("logs and publishes", func(t *testing.T) {
		var buf bytes.Buffer
		auditLog := logrus.New()
		auditLog.SetOutput(&buf)
		auditLog.SetFormatter(&logrus.JSONFormatter{})

		publisher := new(mockPublisher)
		publisher.On("Publish", ctx, mock.MatchedBy(func(event *fhir_dto.AuditEvent) bool {
			return event.Action == "C" && event.Entity[0].What.Reference == "Observation/obs-1"
		})).Return(nil).Once()

		service := NewAuditService(testSource, publisher, auditLog, zap.NewNop())
		service.Record(ctx, contracts.AuditEntry{
			Action:       fhir_dto.AuditEventActionCreate,
			ResourceType: constvars.ResourceObservation,
			ResourceID:   "obs-1",
		})

		publisher.AssertExpectations(t)
		assert.Contains(t, buf.String(), `"level":"info"`)
		assert.Contains(t, buf.String(), "Observation/obs-1")
	})

	t.Run("publish failure is swallowed", func(t *testing.T) {
		auditLog := logrus.New()
		auditLog.SetOutput(&bytes.Buffer{})

		publisher := new(mockPublisher)
		publisher.On("Publish", ctx, mock.Anything).Return(errors.New("channel closed"))

		service := NewAuditService(testSource, publisher, auditLog, zap.NewNop())
		assert.NotPanics(t, func() {
			service.Record(ctx, contracts.AuditEntry{Action: "U", ResourceType: constvars.ResourcePatient, ResourceID: "p"})
		})
		publisher.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("failures are logged at error", func(t *testing.T) {
		var buf bytes.Buffer
		auditLog := logrus.New()
		auditLog.SetOutput(&buf)
		auditLog.SetFormatter(&logrus.JSONFormatter{})

		service := NewAuditService(testSource, NewNoopPublisher(), auditLog, zap.NewNop())
		service.Record(ctx, contracts.AuditEntry{Action: "C", ResourceType: constvars.ResourceTask, Err: errors.New("boom")})

		assert.Contains(t, buf.String(), `"level":"error"`)
	})
}
