package middlewares

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

const maxClientRequestIDLength = 128

// statusWriter remembers the first status written and counts body bytes.
type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.status == 0 {
		sw.status = code
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.size += n
	return n, err
}

func (sw *statusWriter) code() int {
	if sw.status == 0 {
		return http.StatusOK
	}
	return sw.status
}

// Logging emits one line when a request arrives and one when it completes.
// Requests answered with 5xx are logged at error level.
func (m *Middlewares) Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := logger.With(
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)

			clientSupplied, _ := r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)
			reqLog.Info("HTTP request received",
				zap.Bool("client_request_id", clientSupplied),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingUserAgentKey, r.UserAgent()),
				zap.String(constvars.LoggingQueryKey, r.URL.RawQuery),
				zap.String(constvars.LoggingContentTypeKey, r.Header.Get(constvars.HeaderContentType)),
			)

			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)

			status := sw.code()
			fields := []zap.Field{
				zap.Int(constvars.LoggingStatusCodeKey, status),
				zap.Int(constvars.LoggingResponseLengthKey, sw.size),
				zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
				zap.Bool(constvars.LoggingSuccessKey, status < http.StatusBadRequest),
			}
			if status >= http.StatusInternalServerError {
				reqLog.Error("HTTP request failed", fields...)
				return
			}
			reqLog.Info("HTTP request completed", fields...)
		})
	}
}

// RequestIDMiddleware keeps a usable X-Request-ID from the caller, otherwise
// issues one, and echoes it on the response.
func (m *Middlewares) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constvars.HeaderXRequestID)
		clientSupplied := validClientRequestID(requestID)
		if !clientSupplied {
			requestID = utils.GenerateRequestID()
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_REQUEST_ID_KEY, requestID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY, clientSupplied)
		w.Header().Set(constvars.HeaderXRequestID, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validClientRequestID rejects ids that would pollute logs: empty, oversized
// or containing control characters.
func validClientRequestID(id string) bool {
	if id == "" || len(id) > maxClientRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x20 || id[i] == 0x7f {
			return false
		}
	}
	return true
}
