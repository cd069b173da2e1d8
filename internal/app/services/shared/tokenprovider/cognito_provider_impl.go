package tokenprovider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

const (
	// refreshSkew is how long before expiry a cached token stops being handed out.
	refreshSkew          = 60 * time.Second
	defaultTokenLifetime = time.Hour
	refreshTimeout       = 30 * time.Second
)

type CognitoConfig struct {
	Region   string
	ClientID string
	Username string
	Password string
	APIKey   string
	// Endpoint overrides the regional Cognito url.
	Endpoint string
}

type initiateAuthRequest struct {
	AuthFlow       string            `json:"AuthFlow"`
	ClientId       string            `json:"ClientId"`
	AuthParameters map[string]string `json:"AuthParameters"`
}

type initiateAuthResponse struct {
	AuthenticationResult *struct {
		AccessToken string `json:"AccessToken"`
		IdToken     string `json:"IdToken"`
		ExpiresIn   int    `json:"ExpiresIn"`
		TokenType   string `json:"TokenType"`
	} `json:"AuthenticationResult"`
}

type cognitoError struct {
	Type    string `json:"__type"`
	Message string `json:"message"`
}

type cognitoProvider struct {
	config     CognitoConfig
	endpoint   string
	httpClient *http.Client
	Log        *zap.Logger
	now        func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewCognitoProvider authenticates against a Cognito user pool with
// USER_PASSWORD_AUTH and caches the resulting id token until shortly before
// it expires.
func NewCognitoProvider(config CognitoConfig, httpClient *http.Client, logger *zap.Logger) contracts.TokenProvider {
	region := config.Region
	if region == "" {
		region = constvars.CognitoDefaultRegion
	}
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf(constvars.CognitoEndpointFormat, region)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: refreshTimeout}
	}
	return &cognitoProvider{
		config:     config,
		endpoint:   endpoint,
		httpClient: httpClient,
		Log:        logger,
		now:        time.Now,
	}
}

func (p *cognitoProvider) APIKey() string {
	return p.config.APIKey
}

func (p *cognitoProvider) Token(ctx context.Context) (string, error) {
	if token, ok := p.cached(); ok {
		return token, nil
	}

	result, err, shared := p.group.Do("token", func() (interface{}, error) {
		if token, ok := p.cached(); ok {
			return token, nil
		}
		// One caller giving up must not fail everyone waiting on the flight.
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()

		token, expiresAt, err := p.authenticate(refreshCtx)
		if err != nil {
			return "", err
		}

		p.mu.Lock()
		p.token = token
		p.expiresAt = expiresAt
		p.mu.Unlock()
		return token, nil
	})
	if err != nil {
		return "", err
	}

	p.Log.Debug("cognitoProvider.Token refreshed",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.Bool("shared", shared),
	)
	return result.(string), nil
}

func (p *cognitoProvider) Invalidate(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if token != "" && p.token == token {
		p.token = ""
		p.expiresAt = time.Time{}
	}
}

func (p *cognitoProvider) cached() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token == "" || !p.now().Add(refreshSkew).Before(p.expiresAt) {
		return "", false
	}
	return p.token, true
}

func (p *cognitoProvider) authenticate(ctx context.Context) (string, time.Time, error) {
	requestID := utils.GetRequestID(ctx)
	p.Log.Info("cognitoProvider.authenticate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingURLKey, p.endpoint),
	)

	requestJSON, err := json.Marshal(initiateAuthRequest{
		AuthFlow: constvars.CognitoAuthFlowUserPassword,
		ClientId: p.config.ClientID,
		AuthParameters: map[string]string{
			"USERNAME": p.config.Username,
			"PASSWORD": p.config.Password,
		},
	})
	if err != nil {
		return "", time.Time{}, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, p.endpoint, bytes.NewReader(requestJSON))
	if err != nil {
		return "", time.Time{}, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationAmzJSON)
	req.Header.Set(constvars.HeaderXAmzTarget, constvars.CognitoInitiateAuthTarget)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.Log.Error("cognitoProvider.authenticate error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", time.Time{}, exceptions.ErrTokenAcquisition(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, exceptions.ErrTokenAcquisition(err)
	}

	if resp.StatusCode != constvars.StatusOK {
		var cognitoErr cognitoError
		_ = json.Unmarshal(body, &cognitoErr)
		err := fmt.Errorf("cognito returned %d: %s %s", resp.StatusCode, cognitoErr.Type, cognitoErr.Message)
		p.Log.Error("cognitoProvider.authenticate rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(err),
		)
		return "", time.Time{}, exceptions.ErrTokenAcquisition(err)
	}

	var result initiateAuthResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", time.Time{}, exceptions.ErrTokenAcquisition(err)
	}
	if result.AuthenticationResult == nil || result.AuthenticationResult.IdToken == "" {
		return "", time.Time{}, exceptions.ErrTokenAcquisition(fmt.Errorf("no id token in authentication result"))
	}

	token := result.AuthenticationResult.IdToken
	expiresAt := p.expiry(token, result.AuthenticationResult.ExpiresIn)

	p.Log.Info("cognitoProvider.authenticate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Time("expires_at", expiresAt),
	)
	return token, expiresAt, nil
}

// expiry prefers the exp claim of the token and falls back to ExpiresIn.
func (p *cognitoProvider) expiry(token string, expiresIn int) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	if expiresIn > 0 {
		return p.now().Add(time.Duration(expiresIn) * time.Second)
	}
	return p.now().Add(defaultTokenLifetime)
}
