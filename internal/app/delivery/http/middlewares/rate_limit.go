package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

// RateLimit limits each client IP to APP_MAX_REQUESTS per window. A zero
// limit disables it.
func (m *Middlewares) RateLimit() func(next http.Handler) http.Handler {
	app := m.InternalConfig.App
	if app.MaxRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	window := time.Duration(app.MaxTimeRequestsPerSeconds) * time.Second
	if window <= 0 {
		window = time.Second
	}
	return httprate.Limit(
		app.MaxRequests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
		}),
	)
}
