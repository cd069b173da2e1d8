package contracts

import (
	"context"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type AuditService interface {
	// Record never fails the caller; delivery problems are only logged.
	Record(ctx context.Context, entry AuditEntry)
}

type AuditEntry struct {
	Action       string
	ResourceType string
	ResourceID   string
	PatientID    string
	Err          error
}

type AuditPublisher interface {
	Publish(ctx context.Context, event *fhir_dto.AuditEvent) error
}
