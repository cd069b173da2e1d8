package contracts

import (
	"context"
	"time"
)

// LockerService serialises the search-then-write cycle for one identifier
// across replicas.
type LockerService interface {
	// TryLock returns the token that must be handed back to Unlock.
	TryLock(ctx context.Context, key string, expiration time.Duration) (acquired bool, token string, err error)
	Unlock(ctx context.Context, key, token string) error
}
