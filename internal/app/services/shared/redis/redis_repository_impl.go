package redis

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

// compareAndDelete returns 1 when the key was deleted, 0 when it was already
// gone and -1 when it holds another value.
var compareAndDelete = redis.NewScript(`
local stored = redis.call("GET", KEYS[1])
if not stored then
	return 0
end
if stored == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return -1
`)

type redisRepository struct {
	client *redis.Client
	Log    *zap.Logger
}

func NewRedisRepository(client *redis.Client, logger *zap.Logger) contracts.RedisRepository {
	return &redisRepository{
		client: client,
		Log:    logger,
	}
}

// Set stores value JSON-encoded.
func (r *redisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	if err := r.client.Set(ctx, key, encoded, exp).Err(); err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

func (r *redisRepository) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		r.Log.Debug("redisRepository.Get miss",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return "", nil
	}
	if err != nil {
		return "", exceptions.ErrRedisGet(err)
	}
	return data, nil
}

func (r *redisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	acquired, err := r.client.SetNX(ctx, key, encoded, exp).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return acquired, nil
}

func (r *redisRepository) CompareAndDelete(ctx context.Context, key string, value interface{}) (bool, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	result, err := compareAndDelete.Run(ctx, r.client, []string{key}, string(encoded)).Int64()
	if err != nil {
		return false, exceptions.ErrRedisDelete(err)
	}
	return result >= 0, nil
}
