package contracts

import (
	"context"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

// FhirClient talks to the downstream clinical data repository.
type FhirClient interface {
	BaseUrl() string
	Search(ctx context.Context, resourceType string, params url.Values) (*fhir_dto.FHIRBundle, error)
	SearchByIdentifier(ctx context.Context, resourceType string, identifier fhir_dto.Identifier) ([]json.RawMessage, error)
	Read(ctx context.Context, resourceType, id string) (json.RawMessage, error)
	Create(ctx context.Context, resourceType string, body json.RawMessage) (json.RawMessage, error)
	Update(ctx context.Context, resourceType, id string, body json.RawMessage) (json.RawMessage, error)
	Transaction(ctx context.Context, bundle json.RawMessage) (json.RawMessage, error)
	Forward(ctx context.Context, method, path string, query url.Values, body []byte) (*ForwardResponse, error)
}

// ForwardResponse is an upstream reply passed back to the caller untouched.
type ForwardResponse struct {
	StatusCode  int
	ContentType string
	Location    string
	Body        []byte
}
