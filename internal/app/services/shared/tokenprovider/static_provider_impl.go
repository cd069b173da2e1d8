package tokenprovider

import (
	"context"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
)

type staticProvider struct {
	token  string
	apiKey string
}

// NewStaticProvider always hands out the configured token. An empty token
// means requests go out without an Authorization header.
func NewStaticProvider(token, apiKey string) contracts.TokenProvider {
	return &staticProvider{token: token, apiKey: apiKey}
}

func (p *staticProvider) Token(ctx context.Context) (string, error) { return p.token, nil }

func (p *staticProvider) Invalidate(token string) {}

func (p *staticProvider) APIKey() string { return p.apiKey }
