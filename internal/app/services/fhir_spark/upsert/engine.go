package upsert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/retry"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

const (
	DefaultLockTTL  = 30 * time.Second
	DefaultLockWait = 5 * time.Second
	DefaultCacheTTL = 5 * time.Minute

	lockPollInterval    = 50 * time.Millisecond
	lockMaxPollInterval = 500 * time.Millisecond
)

// Collaborator carries what differs between resource types: how references
// are resolved and what must hold before the resource is written.
type Collaborator[PT fhir_dto.Resource] interface {
	ResourceType() string
	Resolve(ctx context.Context, resource PT, scope Scope) error
	// Validate runs after resolution. found reports whether the repository
	// already holds a resource with the same identifier.
	Validate(resource PT, found bool) error
}

type Config struct {
	Policy   retry.Policy
	LockTTL  time.Duration
	LockWait time.Duration
	CacheTTL time.Duration
}

// Engine runs the search-then-write cycle shared by every resource type.
type Engine struct {
	client   contracts.FhirClient
	locker   contracts.LockerService
	audit    contracts.AuditService
	cache    contracts.RedisRepository
	policy   retry.Policy
	lockTTL  time.Duration
	lockWait time.Duration
	cacheTTL time.Duration
	Log      *zap.Logger
}

func NewEngine(
	client contracts.FhirClient,
	locker contracts.LockerService,
	audit contracts.AuditService,
	cache contracts.RedisRepository,
	config Config,
	logger *zap.Logger,
) *Engine {
	e := &Engine{
		client:   client,
		locker:   locker,
		audit:    audit,
		cache:    cache,
		policy:   config.Policy,
		lockTTL:  config.LockTTL,
		lockWait: config.LockWait,
		cacheTTL: config.CacheTTL,
		Log:      logger,
	}
	if e.lockTTL <= 0 {
		e.lockTTL = DefaultLockTTL
	}
	if e.lockWait <= 0 {
		e.lockWait = DefaultLockWait
	}
	if e.cacheTTL <= 0 {
		e.cacheTTL = DefaultCacheTTL
	}
	if e.policy.OnRetry == nil {
		e.policy.OnRetry = func(attempt int, err error, wait time.Duration) {
			e.Log.Warn("upsert.Engine retrying repository call",
				zap.Int(constvars.LoggingAttemptKey, attempt),
				zap.Duration(constvars.LoggingDurationKey, wait),
				zap.Error(err),
			)
		}
	}
	return e
}

func (e *Engine) Client() contracts.FhirClient { return e.client }

func (e *Engine) Policy() retry.Policy { return e.policy }

// Do runs op under the retry policy. Failures still retryable when attempts
// run out are reported as exhausted retries for resourceType.
func (e *Engine) Do(ctx context.Context, resourceType string, op func(ctx context.Context) error) error {
	if err := e.policy.Do(ctx, op); err != nil {
		return giveUp(err, resourceType)
	}
	return nil
}

// Decode unmarshals raw into a new resource of type T.
func Decode[T any, PT interface {
	*T
	fhir_dto.Resource
}](raw json.RawMessage, resourceType string) (PT, error) {
	resource := PT(new(T))
	if err := json.Unmarshal(raw, resource); err != nil {
		return nil, exceptions.ErrUnprocessableEntity(err, fmt.Sprintf(constvars.ErrDevCDRDecodeFHIRResource, resourceType))
	}
	if got := resource.GetResourceType(); got != resourceType {
		return nil, exceptions.ErrUnprocessableEntity(fmt.Errorf("resourceType %q", got), fmt.Sprintf(constvars.ErrDevFHIRUnsupportedResource, resourceType))
	}
	return resource, nil
}

// Upsert writes resource to the repository, updating the resource that
// carries its first searchable identifier or creating a new one. raw is the
// document resource was decoded from; elements the typed model does not know
// are written back untouched. bundle may be nil.
func Upsert[T any, PT interface {
	*T
	fhir_dto.Resource
}](ctx context.Context, e *Engine, c Collaborator[PT], resource PT, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (PT, error) {
	resourceType := c.ResourceType()
	requestID := utils.GetRequestID(ctx)
	e.Log.Info("upsert.Upsert called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)

	identifier, ok := fhir_dto.FirstSearchableIdentifier(resource)
	if !ok {
		err := exceptions.ErrNoIdentifier(resourceType)
		e.Log.Error("upsert.Upsert resource has no searchable identifier",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.Error(err),
		)
		return nil, err
	}

	unlock, err := e.lock(ctx, resourceType, identifier)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := e.find(ctx, resourceType, identifier)
	if err != nil {
		return nil, err
	}
	found := existing != nil

	scope := Scope{Bundle: bundle, Contained: resource.GetContained()}
	if err := c.Resolve(ctx, resource, scope); err != nil {
		e.Log.Error("upsert.Upsert error resolving references",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.Error(err),
		)
		return nil, err
	}
	if err := c.Validate(resource, found); err != nil {
		e.Log.Error("upsert.Upsert validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.Error(err),
		)
		return nil, err
	}
	resource.ClearContained()

	action := constvars.AuditActionCreate
	if found {
		action = constvars.AuditActionUpdate
		resource.SetIdentifier(fhir_dto.MergeIdentifiers(resource.GetIdentifier(), existing.Identifier))
		resource.SetID(existing.ID)
	} else {
		resource.SetID("")
	}

	payload, err := fhir_dto.Overlay(raw, resource)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	var response json.RawMessage
	err = e.policy.Do(ctx, func(ctx context.Context) error {
		var err error
		if found {
			response, err = e.client.Update(ctx, resourceType, existing.ID, payload)
		} else {
			response, err = e.client.Create(ctx, resourceType, payload)
		}
		return err
	})
	if err != nil {
		err = giveUp(err, resourceType)
		e.Log.Error("upsert.Upsert error writing resource",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.String(constvars.LoggingActionKey, action),
			zap.Error(err),
		)
		e.audit.Record(ctx, contracts.AuditEntry{
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resource.GetID(),
			PatientID:    patientOf(resource),
			Err:          err,
		})
		return nil, err
	}

	saved := PT(new(T))
	if err := json.Unmarshal(response, saved); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, resourceType)
	}

	e.remember(ctx, resourceType, saved)
	e.audit.Record(ctx, contracts.AuditEntry{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   saved.GetID(),
		PatientID:    patientOf(saved),
	})

	e.Log.Info("upsert.Upsert succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, saved.GetID()),
		zap.String(constvars.LoggingActionKey, action),
	)
	return saved, nil
}

// UpsertRaw decodes raw as T and upserts it through c.
func UpsertRaw[T any, PT interface {
	*T
	fhir_dto.Resource
}](ctx context.Context, e *Engine, c Collaborator[PT], raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	resource, err := Decode[T, PT](raw, c.ResourceType())
	if err != nil {
		return nil, err
	}
	saved, err := Upsert[T, PT](ctx, e, c, resource, raw, bundle)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// find returns the existing resource carrying identifier, or nil.
func (e *Engine) find(ctx context.Context, resourceType string, identifier fhir_dto.Identifier) (*fhir_dto.DomainResource, error) {
	var matches []json.RawMessage
	err := e.policy.Do(ctx, func(ctx context.Context) error {
		var err error
		matches, err = e.client.SearchByIdentifier(ctx, resourceType, identifier)
		return err
	})
	if err != nil {
		err = giveUp(err, resourceType)
		e.Log.Error("upsert.Engine.find error searching repository",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingIdentifierKey, identifier.Token()),
			zap.Error(err),
		)
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	if len(matches) > 1 {
		e.Log.Warn("upsert.Engine.find identifier matches more than one resource, using the first",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.String(constvars.LoggingIdentifierKey, identifier.Token()),
			zap.Int(constvars.LoggingCountKey, len(matches)),
		)
	}

	existing := new(fhir_dto.DomainResource)
	if err := json.Unmarshal(matches[0], existing); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, resourceType)
	}
	return existing, nil
}

// lock serialises upserts of one identifier across replicas. When redis
// cannot be reached the upsert goes ahead unlocked.
func (e *Engine) lock(ctx context.Context, resourceType string, identifier fhir_dto.Identifier) (func(), error) {
	noop := func() {}
	if e.locker == nil {
		return noop, nil
	}

	key := fmt.Sprintf(constvars.RedisLockKeyFormat, resourceType, identifier.System, identifier.Value)
	var lockValue string
	errRedis := errors.New("redis unavailable")

	acquire := func() error {
		acquired, value, err := e.locker.TryLock(ctx, key, e.lockTTL)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %v", errRedis, err))
		}
		if !acquired {
			return exceptions.ErrRedisLockBusy(key)
		}
		lockValue = value
		return nil
	}

	wait := backoff.NewExponentialBackOff()
	wait.InitialInterval = lockPollInterval
	wait.MaxInterval = lockMaxPollInterval
	wait.MaxElapsedTime = e.lockWait
	wait.Reset()

	if err := backoff.Retry(acquire, backoff.WithContext(wait, ctx)); err != nil {
		if errors.Is(err, errRedis) {
			e.Log.Warn("upsert.Engine.lock redis unavailable, continuing without lock",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
			return noop, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.Log.Error("upsert.Engine.lock gave up waiting for lock",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return nil, exceptions.ErrRedisLockBusy(key)
	}

	return func() {
		if err := e.locker.Unlock(context.WithoutCancel(ctx), key, lockValue); err != nil {
			e.Log.Warn("upsert.Engine.lock error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}, nil
}

// remember caches the id of saved under each of its searchable identifiers
// so later reference resolution skips the search.
func (e *Engine) remember(ctx context.Context, resourceType string, saved fhir_dto.Resource) {
	if e.cache == nil || saved.GetID() == "" {
		return
	}
	for _, identifier := range saved.GetIdentifier() {
		if !identifier.IsSearchable() {
			continue
		}
		key := fmt.Sprintf(constvars.RedisReferenceKeyFormat, resourceType, identifier.System, identifier.Value)
		if err := e.cache.Set(ctx, key, saved.GetID(), e.cacheTTL); err != nil {
			e.Log.Warn("upsert.Engine.remember error caching reference",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
			return
		}
	}
}

// giveUp marks a still-retryable error as the end of the retry budget.
func giveUp(err error, resourceType string) error {
	if !exceptions.IsRetryable(err) {
		return err
	}
	return exceptions.ErrRetriesExhausted(err, resourceType)
}

// patientOf returns the logical id of the patient resource is about, if the
// resource names one by literal reference.
func patientOf(resource fhir_dto.Resource) string {
	var ref *fhir_dto.Reference
	switch r := resource.(type) {
	case *fhir_dto.MedicationRequest:
		ref = r.Subject
	case *fhir_dto.MedicationDispense:
		ref = r.Subject
	case *fhir_dto.ServiceRequest:
		ref = r.Subject
	case *fhir_dto.Observation:
		ref = r.Subject
	case *fhir_dto.DiagnosticReport:
		ref = r.Subject
	case *fhir_dto.Encounter:
		ref = r.Subject
	case *fhir_dto.DocumentReference:
		ref = r.Subject
	case *fhir_dto.Task:
		ref = r.For
	case *fhir_dto.RelatedPerson:
		ref = &r.Patient
	}
	if ref == nil {
		return ""
	}
	id, ok := strings.CutPrefix(ref.Reference, constvars.ResourcePatient+"/")
	if !ok {
		return ""
	}
	return id
}
