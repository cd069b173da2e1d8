package middlewares

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

// APIKeyAuth requires x-api-key to match APP_API_KEY. Without a configured
// key every request passes.
func (m *Middlewares) APIKeyAuth(next http.Handler) http.Handler {
	expected := []byte(m.InternalConfig.App.APIKey)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(expected) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get(constvars.HeaderXAPIKey)
		if apiKey == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAPIKeyRequired(nil))
			return
		}
		if subtle.ConstantTimeCompare([]byte(apiKey), expected) != 1 {
			m.Log.Warn("API key rejected",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		next.ServeHTTP(w, r)
	})
}
