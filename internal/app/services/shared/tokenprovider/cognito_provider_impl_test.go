package tokenprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "integration-engine",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

type fakeCognito struct {
	hits   int32
	delay  time.Duration
	status int
	tokens func() string
}

func (f *fakeCognito) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&f.hits, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.status != 0 && f.status != http.StatusOK {
		w.WriteHeader(f.status)
		w.Write([]byte(`{"__type":"NotAuthorizedException","message":"Incorrect username or password."}`))
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"AuthenticationResult": map[string]interface{}{
			"IdToken":     f.tokens(),
			"AccessToken": "access",
			"ExpiresIn":   3600,
			"TokenType":   "Bearer",
		},
	})
}

func newTestProvider(server *httptest.Server) *cognitoProvider {
	return NewCognitoProvider(CognitoConfig{
		ClientID: "client-id",
		Username: "svc-user",
		Password: "secret",
		APIKey:   "api-key",
		Endpoint: server.URL,
	}, server.Client(), zap.NewNop()).(*cognitoProvider)
}

func TestCognitoProviderToken(t *testing.T) {
	ctx := context.Background()

	t.Run("sends InitiateAuth and returns the id token", func(t *testing.T) {
		idToken := signedToken(t, time.Now().Add(time.Hour))
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, constvars.CognitoInitiateAuthTarget, r.Header.Get(constvars.HeaderXAmzTarget))
			assert.Equal(t, constvars.MIMEApplicationAmzJSON, r.Header.Get(constvars.HeaderContentType))

			var body initiateAuthRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "USER_PASSWORD_AUTH", body.AuthFlow)
			assert.Equal(t, "client-id", body.ClientId)
			assert.Equal(t, "svc-user", body.AuthParameters["USERNAME"])
			assert.Equal(t, "secret", body.AuthParameters["PASSWORD"])

			w.Write([]byte(`{"AuthenticationResult":{"IdToken":"` + idToken + `","ExpiresIn":3600}}`))
		}))
		defer server.Close()

		provider := newTestProvider(server)
		token, err := provider.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, idToken, token)
		assert.Equal(t, "api-key", provider.APIKey())
	})

	t.Run("caches until close to expiry", func(t *testing.T) {
		fake := &fakeCognito{tokens: func() string { return signedToken(t, time.Now().Add(time.Hour)) }}
		server := httptest.NewServer(fake)
		defer server.Close()

		provider := newTestProvider(server)
		first, err := provider.Token(ctx)
		require.NoError(t, err)
		second, err := provider.Token(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.EqualValues(t, 1, atomic.LoadInt32(&fake.hits))
	})

	t.Run("token inside the refresh window is renewed", func(t *testing.T) {
		fake := &fakeCognito{tokens: func() string { return signedToken(t, time.Now().Add(30*time.Second)) }}
		server := httptest.NewServer(fake)
		defer server.Close()

		provider := newTestProvider(server)
		_, err := provider.Token(ctx)
		require.NoError(t, err)
		_, err = provider.Token(ctx)
		require.NoError(t, err)

		assert.EqualValues(t, 2, atomic.LoadInt32(&fake.hits))
	})

	t.Run("concurrent callers share one authentication", func(t *testing.T) {
		fake := &fakeCognito{
			delay:  50 * time.Millisecond,
			tokens: func() string { return signedToken(t, time.Now().Add(time.Hour)) },
		}
		server := httptest.NewServer(fake)
		defer server.Close()

		provider := newTestProvider(server)
		var wg sync.WaitGroup
		tokens := make([]string, 20)
		for i := range tokens {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				token, err := provider.Token(ctx)
				assert.NoError(t, err)
				tokens[i] = token
			}(i)
		}
		wg.Wait()

		assert.EqualValues(t, 1, atomic.LoadInt32(&fake.hits))
		for _, token := range tokens {
			assert.Equal(t, tokens[0], token)
		}
	})

	t.Run("invalidate forces a new authentication", func(t *testing.T) {
		issued := int32(0)
		fake := &fakeCognito{tokens: func() string {
			n := atomic.AddInt32(&issued, 1)
			return signedToken(t, time.Now().Add(time.Hour+time.Duration(n)*time.Second))
		}}
		server := httptest.NewServer(fake)
		defer server.Close()

		provider := newTestProvider(server)
		first, err := provider.Token(ctx)
		require.NoError(t, err)

		provider.Invalidate("some-older-token")
		again, err := provider.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, again)

		provider.Invalidate(first)
		second, err := provider.Token(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
		assert.EqualValues(t, 2, atomic.LoadInt32(&fake.hits))
	})

	t.Run("rejected credentials map to a bad gateway", func(t *testing.T) {
		fake := &fakeCognito{status: http.StatusBadRequest}
		server := httptest.NewServer(fake)
		defer server.Close()

		provider := newTestProvider(server)
		_, err := provider.Token(ctx)
		require.Error(t, err)
		assert.Equal(t, constvars.StatusBadGateway, exceptions.StatusCode(err))
	})

	t.Run("opaque token falls back to ExpiresIn", func(t *testing.T) {
		fake := &fakeCognito{tokens: func() string { return "not-a-jwt" }}
		server := httptest.NewServer(fake)
		defer server.Close()

		provider := newTestProvider(server)
		token, err := provider.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, "not-a-jwt", token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), provider.expiresAt, 5*time.Second)
	})
}

func TestStaticProvider(t *testing.T) {
	provider := NewStaticProvider("static-token", "key")
	token, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static-token", token)
	provider.Invalidate("static-token")
	token, _ = provider.Token(context.Background())
	assert.Equal(t, "static-token", token)
	assert.Equal(t, "key", provider.APIKey())
}
