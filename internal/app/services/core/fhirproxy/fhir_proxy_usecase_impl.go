package fhirproxy

import (
	"context"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

type fhirProxyUsecase struct {
	Client   contracts.FhirClient
	Registry contracts.UpsertRegistry
	Exposed  map[string]bool
	Log      *zap.Logger
}

// NewFhirProxyUsecase forwards reads and writes of the exposed resource types
// to the repository. Creates of a type with an upsert collaborator are
// deduplicated instead of forwarded.
func NewFhirProxyUsecase(client contracts.FhirClient, registry contracts.UpsertRegistry, exposed []string, logger *zap.Logger) contracts.FhirProxyUsecase {
	exposedTypes := make(map[string]bool, len(exposed))
	for _, resourceType := range exposed {
		exposedTypes[resourceType] = true
	}
	return &fhirProxyUsecase{
		Client:   client,
		Registry: registry,
		Exposed:  exposedTypes,
		Log:      logger,
	}
}

func (uc *fhirProxyUsecase) Read(ctx context.Context, resourceType, id string) (*contracts.ForwardResponse, error) {
	if !uc.Exposed[resourceType] {
		return nil, exceptions.ErrResourceNotExposed(resourceType)
	}
	return uc.forward(ctx, http.MethodGet, resourceType+"/"+id, nil, nil)
}

func (uc *fhirProxyUsecase) Search(ctx context.Context, resourceType string, query url.Values) (*contracts.ForwardResponse, error) {
	if !uc.Exposed[resourceType] {
		return nil, exceptions.ErrResourceNotExposed(resourceType)
	}
	return uc.forward(ctx, http.MethodGet, resourceType, query, nil)
}

func (uc *fhirProxyUsecase) Create(ctx context.Context, resourceType string, body []byte) (*contracts.ForwardResponse, error) {
	if !uc.Exposed[resourceType] {
		return nil, exceptions.ErrResourceNotExposed(resourceType)
	}
	if _, ok := uc.Registry.Lookup(resourceType); !ok {
		return uc.forward(ctx, http.MethodPost, resourceType, nil, body)
	}

	requestID := utils.GetRequestID(ctx)
	uc.Log.Debug("fhirProxyUsecase.Create upserting",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)

	saved, err := uc.Registry.CreateUpdateRaw(ctx, body, nil)
	if err != nil {
		return nil, err
	}
	if saved.GetResourceType() != resourceType {
		uc.Log.Warn("fhirProxyUsecase.Create body type differs from path",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, saved.GetResourceType()),
		)
	}

	raw, err := json.Marshal(saved)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	return &contracts.ForwardResponse{
		StatusCode:  constvars.StatusCreated,
		ContentType: constvars.MIMEApplicationFHIRJSONCharsetUTF8,
		Location:    saved.GetResourceType() + "/" + saved.GetID(),
		Body:        raw,
	}, nil
}

func (uc *fhirProxyUsecase) Update(ctx context.Context, resourceType, id string, body []byte) (*contracts.ForwardResponse, error) {
	if !uc.Exposed[resourceType] {
		return nil, exceptions.ErrResourceNotExposed(resourceType)
	}
	return uc.forward(ctx, http.MethodPut, resourceType+"/"+id, nil, body)
}

func (uc *fhirProxyUsecase) forward(ctx context.Context, method, path string, query url.Values, body []byte) (*contracts.ForwardResponse, error) {
	requestID := utils.GetRequestID(ctx)
	response, err := uc.Client.Forward(ctx, method, path, query, body)
	if err != nil {
		uc.Log.Error("fhirProxyUsecase.forward error calling repository",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMethodKey, method),
			zap.String(constvars.LoggingEndpointKey, path),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("fhirProxyUsecase.forward succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMethodKey, method),
		zap.String(constvars.LoggingEndpointKey, path),
		zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode),
	)
	return response, nil
}
