package resources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

type Config struct {
	BaseUrl string
	// Timeout bounds a single call including the 401 retry.
	Timeout time.Duration
	// RequestsPerSecond throttles outbound calls; zero disables throttling.
	RequestsPerSecond float64
	Burst             int
}

type resourceFhirClient struct {
	baseUrl    string
	timeout    time.Duration
	httpClient *http.Client
	tokens     contracts.TokenProvider
	limiter    *rate.Limiter
	Log        *zap.Logger
}

type upstreamResponse struct {
	statusCode int
	header     http.Header
	body       []byte
}

func NewResourceFhirClient(config Config, tokens contracts.TokenProvider, httpClient *http.Client, logger *zap.Logger) contracts.FhirClient {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if config.RequestsPerSecond > 0 {
		burst := config.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &resourceFhirClient{
		baseUrl:    strings.TrimRight(config.BaseUrl, "/"),
		timeout:    config.Timeout,
		httpClient: httpClient,
		tokens:     tokens,
		limiter:    limiter,
		Log:        logger,
	}
}

func (c *resourceFhirClient) BaseUrl() string {
	return c.baseUrl
}

func (c *resourceFhirClient) Search(ctx context.Context, resourceType string, params url.Values) (*fhir_dto.FHIRBundle, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Debug("resourceFhirClient.Search called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingQueryParamsKey, params.Encode()),
	)

	resp, err := c.send(ctx, constvars.MethodGet, resourceType, params, nil)
	if err != nil {
		return nil, exceptions.ErrSearchFHIRResource(err, resourceType)
	}
	if err := c.checkStatus(ctx, resp, resourceType); err != nil {
		return nil, err
	}

	bundle := new(fhir_dto.FHIRBundle)
	if err := json.Unmarshal(resp.body, bundle); err != nil {
		c.Log.Error("resourceFhirClient.Search error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, resourceType)
	}

	c.Log.Debug("resourceFhirClient.Search succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(bundle.Entry)),
	)
	return bundle, nil
}

// SearchByIdentifier returns the matching resources of resourceType; search
// outcome entries are skipped.
func (c *resourceFhirClient) SearchByIdentifier(ctx context.Context, resourceType string, identifier fhir_dto.Identifier) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set(constvars.FhirSearchParamIdentifier, identifier.Token())

	bundle, err := c.Search(ctx, resourceType, params)
	if err != nil {
		return nil, err
	}

	var matches []json.RawMessage
	for _, entry := range bundle.Entry {
		if entry.EntryResourceType() == resourceType {
			matches = append(matches, entry.Resource)
		}
	}
	return matches, nil
}

func (c *resourceFhirClient) Read(ctx context.Context, resourceType, id string) (json.RawMessage, error) {
	c.Log.Debug("resourceFhirClient.Read called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, id),
	)

	resp, err := c.send(ctx, constvars.MethodGet, resourceType+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, exceptions.ErrGetFHIRResource(err, resourceType)
	}
	if err := c.checkStatus(ctx, resp, resourceType); err != nil {
		return nil, err
	}
	return resp.body, nil
}

func (c *resourceFhirClient) Create(ctx context.Context, resourceType string, body json.RawMessage) (json.RawMessage, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("resourceFhirClient.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)

	resp, err := c.send(ctx, constvars.MethodPost, resourceType, nil, body)
	if err != nil {
		c.Log.Error("resourceFhirClient.Create error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateFHIRResource(err, resourceType)
	}
	if err := c.checkStatus(ctx, resp, resourceType); err != nil {
		return nil, err
	}

	c.Log.Info("resourceFhirClient.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)
	return c.representation(ctx, resp, resourceType, "")
}

func (c *resourceFhirClient) Update(ctx context.Context, resourceType, id string, body json.RawMessage) (json.RawMessage, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("resourceFhirClient.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, id),
	)

	resp, err := c.send(ctx, constvars.MethodPut, resourceType+"/"+url.PathEscape(id), nil, body)
	if err != nil {
		c.Log.Error("resourceFhirClient.Update error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrUpdateFHIRResource(err, resourceType)
	}
	if err := c.checkStatus(ctx, resp, resourceType); err != nil {
		return nil, err
	}

	c.Log.Info("resourceFhirClient.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, id),
	)
	return c.representation(ctx, resp, resourceType, id)
}

// representation returns the stored resource of a successful write. Servers
// that ignore Prefer answer with an empty body; the resource is then read
// back from the Location header, or from id when there is none.
func (c *resourceFhirClient) representation(ctx context.Context, resp *upstreamResponse, resourceType, id string) (json.RawMessage, error) {
	if len(bytes.TrimSpace(resp.body)) > 0 {
		return resp.body, nil
	}
	if located := idFromLocation(resp.header.Get(constvars.HeaderLocation), resourceType); located != "" {
		id = located
	}
	if id == "" {
		return nil, exceptions.ErrDecodeResponse(errors.New("empty body and no Location"), resourceType)
	}

	c.Log.Debug("resourceFhirClient.representation reading back written resource",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, id),
	)
	return c.Read(ctx, resourceType, id)
}

// idFromLocation picks the logical id out of "[base/]Type/id[/_history/v]".
func idFromLocation(location, resourceType string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	parts := strings.Split(strings.Trim(location, "/"), "/")
	for i := len(parts) - 2; i >= 0; i-- {
		if parts[i] == resourceType && parts[i+1] != "" {
			return parts[i+1]
		}
	}
	return ""
}

func (c *resourceFhirClient) Transaction(ctx context.Context, bundle json.RawMessage) (json.RawMessage, error) {
	c.Log.Info("resourceFhirClient.Transaction called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
	)

	resp, err := c.send(ctx, constvars.MethodPost, "", nil, bundle)
	if err != nil {
		return nil, exceptions.ErrTransactionFHIR(err)
	}
	if err := c.checkStatus(ctx, resp, constvars.ResourceBundle); err != nil {
		return nil, err
	}
	return resp.body, nil
}

// Forward relays a request and hands back whatever the repository answered.
// Only transport failures become errors.
func (c *resourceFhirClient) Forward(ctx context.Context, method, path string, query url.Values, body []byte) (*contracts.ForwardResponse, error) {
	c.Log.Debug("resourceFhirClient.Forward called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingMethodKey, method),
		zap.String(constvars.LoggingEndpointKey, path),
	)

	resp, err := c.send(ctx, method, strings.TrimLeft(path, "/"), query, body)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	return &contracts.ForwardResponse{
		StatusCode:  resp.statusCode,
		ContentType: resp.header.Get(constvars.HeaderContentType),
		Location:    resp.header.Get(constvars.HeaderLocation),
		Body:        resp.body,
	}, nil
}

// send performs one call. A 401 invalidates the bearer token and the call is
// repeated once with a fresh one.
func (c *resourceFhirClient) send(ctx context.Context, method, path string, query url.Values, body []byte) (*upstreamResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseUrl
	if path != "" {
		endpoint += "/" + path
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := c.do(ctx, method, endpoint, token, body)
		if err != nil {
			return nil, err
		}

		if resp.statusCode == constvars.StatusUnauthorized && token != "" && attempt == 0 {
			c.Log.Warn("resourceFhirClient.send bearer token rejected, refreshing",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingURLKey, endpoint),
			)
			c.tokens.Invalidate(token)
			continue
		}
		return resp, nil
	}
}

func (c *resourceFhirClient) do(ctx context.Context, method, endpoint, token string, body []byte) (*upstreamResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	if body != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
		req.Header.Set(constvars.HeaderPrefer, constvars.PreferReturnRepresentation)
	}
	if token != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthBearerPrefix+token)
	}
	if apiKey := c.tokens.APIKey(); apiKey != "" {
		req.Header.Set(constvars.HeaderXAPIKey, apiKey)
	}
	if requestID := utils.GetRequestID(ctx); requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	return &upstreamResponse{statusCode: resp.StatusCode, header: resp.Header, body: respBody}, nil
}

// checkStatus turns a non-2xx reply into an error carrying the diagnostics
// of the returned OperationOutcome, if any.
func (c *resourceFhirClient) checkStatus(ctx context.Context, resp *upstreamResponse, resourceType string) error {
	if resp.statusCode >= 200 && resp.statusCode < 300 {
		return nil
	}

	diagnostics := strings.TrimSpace(string(resp.body))
	var outcome fhir_dto.OperationOutcome
	if err := json.Unmarshal(resp.body, &outcome); err == nil && len(outcome.Issue) > 0 {
		diagnostics = outcome.FirstDiagnostics()
	}
	fhirErrorIssue := fmt.Errorf("%d %s", resp.statusCode, diagnostics)

	c.Log.Error("resourceFhirClient FHIR error",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.Int(constvars.LoggingStatusCodeKey, resp.statusCode),
		zap.Error(fhirErrorIssue),
	)
	return exceptions.ErrFHIRResponse(fhirErrorIssue, resp.statusCode, resourceType)
}
