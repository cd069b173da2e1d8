package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

// Source names the engine as the observer of every AuditEvent.
type Source struct {
	Name       string
	Version    string
	BaseUrl    string
	CDRBaseUrl string
}

type auditService struct {
	source    Source
	publisher contracts.AuditPublisher
	AuditLog  *logrus.Logger
	Log       *zap.Logger
	now       func() time.Time
}

func NewAuditService(source Source, publisher contracts.AuditPublisher, auditLog *logrus.Logger, logger *zap.Logger) contracts.AuditService {
	return &auditService{
		source:    source,
		publisher: publisher,
		AuditLog:  auditLog,
		Log:       logger,
		now:       time.Now,
	}
}

func (s *auditService) Record(ctx context.Context, entry contracts.AuditEntry) {
	requestID := utils.GetRequestID(ctx)
	event := BuildAuditEvent(s.source, entry, s.now())

	encoded, err := json.Marshal(event)
	if err != nil {
		s.Log.Error("auditService.Record error marshaling AuditEvent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}

	fields := logrus.Fields{
		constvars.LoggingRequestIDKey:    requestID,
		constvars.LoggingResourceTypeKey: entry.ResourceType,
		constvars.LoggingResourceIDKey:   entry.ResourceID,
		constvars.LoggingActionKey:       entry.Action,
		"audit_event":                    string(encoded),
	}
	if entry.Err != nil {
		s.AuditLog.WithFields(fields).WithError(entry.Err).Error("FHIR resource transmit failed")
	} else {
		s.AuditLog.WithFields(fields).Info("FHIR resource transmitted")
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.Log.Warn("auditService.Record error publishing AuditEvent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, entry.ResourceType),
			zap.Error(err),
		)
	}
}

// BuildAuditEvent describes one create or update sent to the clinical data
// repository.
func BuildAuditEvent(source Source, entry contracts.AuditEntry, recorded time.Time) *fhir_dto.AuditEvent {
	event := &fhir_dto.AuditEvent{
		ResourceType: constvars.ResourceAuditEvent,
		Type: fhir_dto.Coding{
			System:  constvars.SystemISOEHREvents,
			Code:    constvars.AuditTypeTransmit,
			Display: constvars.AuditTypeTransmitDisplay,
		},
		Action:   entry.Action,
		Recorded: recorded.UTC().Format(time.RFC3339),
		Outcome:  fhir_dto.AuditEventOutcomeSuccess,
		Source: fhir_dto.AuditEventSource{
			Observer: fhir_dto.Reference{
				Type:       constvars.ResourceDevice,
				Identifier: &fhir_dto.Identifier{Value: source.BaseUrl},
				Display:    strings.TrimSpace(fmt.Sprintf("%s %s %s", source.Name, source.Version, source.BaseUrl)),
			},
		},
	}
	if entry.Err != nil {
		event.Outcome = fhir_dto.AuditEventOutcomeSeriousFail
		event.OutcomeDesc = entry.Err.Error()
	}

	event.Agent = append(event.Agent, fhir_dto.AuditEventAgent{
		Type: fhir_dto.NewCodeableConcept(constvars.SystemDICOM, constvars.AuditAgentApplication, constvars.AuditAgentAppDisplay),
		Who: &fhir_dto.Reference{
			Identifier: &fhir_dto.Identifier{Value: source.BaseUrl},
			Display:    source.Name,
		},
		Requestor: true,
	})

	patientID := entry.PatientID
	if patientID == "" && entry.ResourceType == constvars.ResourcePatient {
		patientID = entry.ResourceID
	}
	if patientID != "" {
		event.Agent = append(event.Agent, fhir_dto.AuditEventAgent{
			Type: fhir_dto.NewCodeableConcept(constvars.SystemV3RoleClass, constvars.AuditAgentPatient, constvars.AuditAgentPatientDisplay),
			Who:  &fhir_dto.Reference{Reference: constvars.ResourcePatient + "/" + patientID},
		})
	}

	entity := fhir_dto.AuditEventEntity{
		Type: &fhir_dto.Coding{System: constvars.SystemResourceTypes, Code: entry.ResourceType},
		Detail: []fhir_dto.AuditEventEntityDetail{
			{Type: constvars.AuditDetailQuery, ValueString: strings.TrimRight(source.CDRBaseUrl, "/") + "/" + entry.ResourceType},
			{Type: constvars.AuditDetailResource, ValueString: entry.ResourceType},
		},
	}
	if entry.ResourceID != "" {
		entity.What = &fhir_dto.Reference{Reference: entry.ResourceType + "/" + entry.ResourceID}
	}
	event.Entity = append(event.Entity, entity)

	return event
}
