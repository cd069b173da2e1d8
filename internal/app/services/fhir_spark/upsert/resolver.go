package upsert

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/bundle"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/retry"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

// Resolver rewrites references so they point at resources persisted in the
// repository. References it cannot resolve are left untouched.
type Resolver struct {
	client   contracts.FhirClient
	registry contracts.UpsertRegistry
	cache    contracts.RedisRepository
	policy   retry.Policy
	cacheTTL time.Duration
	Log      *zap.Logger
}

func NewResolver(engine *Engine, registry contracts.UpsertRegistry) *Resolver {
	return &Resolver{
		client:   engine.client,
		registry: registry,
		cache:    engine.cache,
		policy:   engine.policy,
		cacheTTL: engine.cacheTTL,
		Log:      engine.Log,
	}
}

// Resolve points ref at a persisted resource of one of targets, tried in
// order. A reference to a resource in scope is resolved by that resource's
// identifier, upserting it when the repository does not hold it yet. Any
// other reference is resolved by its own identifier. It reports whether ref
// now names a persisted resource.
func (r *Resolver) Resolve(ctx context.Context, ref *fhir_dto.Reference, scope Scope, targets ...string) (bool, error) {
	if ref == nil || len(targets) == 0 {
		return false, nil
	}

	if ref.Reference != "" {
		for _, target := range targets {
			raw := scope.Find(target, ref.Reference)
			if raw == nil {
				continue
			}
			return r.resolveScoped(ctx, ref, scope, target, raw, false)
		}
		if isLiteral(ref.Reference) {
			return true, nil
		}
	}

	if !ref.Identifier.IsSearchable() {
		r.Log.Debug("upsert.Resolver.Resolve reference left unresolved",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingReferenceKey, ref.Reference),
		)
		return false, nil
	}

	for _, target := range targets {
		id, err := r.lookup(ctx, target, *ref.Identifier)
		if err != nil {
			return false, err
		}
		if id != "" {
			bundle.UpdateReference(ref, nil, target, id)
			return true, nil
		}
	}
	return false, nil
}

// Upsert writes the resource of resourceType that ref addresses within scope
// and points ref at it. References to resources outside scope are handed to
// Resolve.
func (r *Resolver) Upsert(ctx context.Context, ref *fhir_dto.Reference, scope Scope, resourceType string) (bool, error) {
	if ref == nil {
		return false, nil
	}
	if raw := scope.Find(resourceType, ref.Reference); raw != nil {
		return r.resolveScoped(ctx, ref, scope, resourceType, raw, true)
	}
	return r.Resolve(ctx, ref, scope, resourceType)
}

func (r *Resolver) resolveScoped(ctx context.Context, ref *fhir_dto.Reference, scope Scope, resourceType string, raw json.RawMessage, always bool) (bool, error) {
	var header fhir_dto.DomainResource
	if err := json.Unmarshal(raw, &header); err != nil {
		return false, exceptions.ErrCannotParseJSON(err)
	}
	identifier, searchable := fhir_dto.FirstSearchableIdentifier(&header)

	if !always && searchable {
		id, err := r.lookup(ctx, resourceType, identifier)
		if err != nil {
			return false, err
		}
		if id != "" {
			bundle.UpdateReference(ref, &identifier, resourceType, id)
			return true, nil
		}
	}

	if !searchable {
		r.Log.Debug("upsert.Resolver referenced resource has no identifier",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.String(constvars.LoggingReferenceKey, ref.Reference),
		)
		return false, nil
	}
	if _, ok := r.registry.Lookup(resourceType); !ok {
		return false, nil
	}

	saved, err := r.registry.CreateUpdateRaw(ctx, raw, scope.Bundle)
	if err != nil {
		return false, err
	}
	bundle.UpdateReference(ref, &identifier, resourceType, saved.GetID())
	return true, nil
}

// lookup returns the id of the resourceType carrying identifier, or "".
func (r *Resolver) lookup(ctx context.Context, resourceType string, identifier fhir_dto.Identifier) (string, error) {
	key := fmt.Sprintf(constvars.RedisReferenceKeyFormat, resourceType, identifier.System, identifier.Value)
	if r.cache != nil {
		cached, err := r.cache.Get(ctx, key)
		if err != nil {
			r.Log.Warn("upsert.Resolver.lookup error reading reference cache",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
		var id string
		if cached != "" && json.Unmarshal([]byte(cached), &id) == nil && id != "" {
			return id, nil
		}
	}

	var matches []json.RawMessage
	err := r.policy.Do(ctx, func(ctx context.Context) error {
		var err error
		matches, err = r.client.SearchByIdentifier(ctx, resourceType, identifier)
		return err
	})
	if err != nil {
		if exceptions.StatusCode(err) == constvars.StatusNotFound {
			return "", nil
		}
		return "", giveUp(err, resourceType)
	}
	if len(matches) == 0 {
		return "", nil
	}

	header, err := fhir_dto.ProbeResource(matches[0])
	if err != nil || header.ID == "" {
		return "", nil
	}
	if r.cache != nil {
		if err := r.cache.Set(ctx, key, header.ID, r.cacheTTL); err != nil {
			r.Log.Warn("upsert.Resolver.lookup error caching reference",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}
	return header.ID, nil
}
