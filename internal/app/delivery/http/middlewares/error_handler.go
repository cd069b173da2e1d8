package middlewares

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

// ErrorHandler turns a panicking handler into a 500 OperationOutcome.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func (m *Middlewares) ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			err := panicError(rec)
			m.Log.Error("Recovered from handler panic",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.Error(err),
				zap.Stack("stack"),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrServerProcess(err))
		}()
		next.ServeHTTP(w, r)
	})
}

func panicError(rec interface{}) error {
	switch x := rec.(type) {
	case error:
		return x
	case string:
		return errors.New(x)
	default:
		return fmt.Errorf("panic: %v", x)
	}
}
