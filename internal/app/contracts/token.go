package contracts

import "context"

// TokenProvider hands out the bearer token and api key sent to the clinical
// data repository.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	// Invalidate drops token from the cache if it is still the current one.
	Invalidate(token string)
	APIKey() string
}
