package fhirtest

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/resources"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/shared/tokenprovider"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/retry"
)

// Client returns a repository client talking to s without authentication.
func (s *Server) Client() contracts.FhirClient {
	return resources.NewResourceFhirClient(
		resources.Config{BaseUrl: s.URL},
		tokenprovider.NewStaticProvider("", ""),
		s.Server.Client(),
		zap.NewNop(),
	)
}

// Engine returns an upsert engine writing to s without locking or caching.
// It makes two attempts per call.
func (s *Server) Engine(audit contracts.AuditService) *upsert.Engine {
	if audit == nil {
		audit = &AuditRecorder{}
	}
	return upsert.NewEngine(s.Client(), nil, audit, nil, upsert.Config{
		Policy: retry.Policy{MaxAttempts: 2, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond},
	}, zap.NewNop())
}

// AuditRecorder keeps every entry it is given.
type AuditRecorder struct {
	mu      sync.Mutex
	entries []contracts.AuditEntry
}

func (a *AuditRecorder) Record(ctx context.Context, entry contracts.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *AuditRecorder) Entries() []contracts.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]contracts.AuditEntry{}, a.entries...)
}
