package locker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

type lockService struct {
	redisRepo contracts.RedisRepository
	owner     string
	Log       *zap.Logger
}

// NewLockService hands out tokens of the form "<owner>/<uuid>" so a stuck
// lock in redis names the replica holding it.
func NewLockService(repo contracts.RedisRepository, owner string, logger *zap.Logger) contracts.LockerService {
	if owner == "" {
		owner = "tie"
	}
	return &lockService{
		redisRepo: repo,
		owner:     owner,
		Log:       logger,
	}
}

// TryLock sets key only if it is absent. The returned token must be handed
// back to Unlock.
func (s *lockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	requestID := utils.GetRequestID(ctx)
	s.Log.Debug("lockService.TryLock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Duration(constvars.LoggingLockExpirationTimeKey, expiration),
	)

	token := s.owner + "/" + uuid.NewString()
	acquired, err := s.redisRepo.TrySetNX(ctx, key, token, expiration)
	if err != nil {
		s.Log.Error("lockService.TryLock error calling redisRepo.TrySetNX",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return false, "", err
	}

	if !acquired {
		s.Log.Debug("lockService.TryLock not acquired",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}

	s.Log.Debug("lockService.TryLock acquired lock",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, token),
	)
	return true, token, nil
}

// Unlock releases key only while it still holds token, so a lock that
// expired and was taken by another replica is left alone.
func (s *lockService) Unlock(ctx context.Context, key, token string) error {
	requestID := utils.GetRequestID(ctx)
	s.Log.Debug("lockService.Unlock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
	)

	released, err := s.redisRepo.CompareAndDelete(ctx, key, token)
	if err != nil {
		s.Log.Error("lockService.Unlock error calling redisRepo.CompareAndDelete",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}

	if !released {
		err := exceptions.ErrRedisUnlock(fmt.Errorf("lock %s is held by another owner", key))
		s.Log.Warn("lockService.Unlock lock ownership mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.String(constvars.LoggingLockExpectedValueKey, token),
		)
		return err
	}

	s.Log.Debug("lockService.Unlock succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
	)
	return nil
}
