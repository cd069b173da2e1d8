package middlewares

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

// BodyBuffer reads the request body up to the configured limit, stores the
// raw bytes in the context and replaces the request body with a new reader
// so it can be consumed again by subsequent middlewares or handlers.
func (m *Middlewares) BodyBuffer(next http.Handler) http.Handler {
	limit := int64(m.InternalConfig.App.RequestBodyLimitInMegabyte) << 20

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := r.Body
		if limit > 0 {
			body = http.MaxBytesReader(w, r.Body, limit)
		}

		bodyBytes, err := io.ReadAll(body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrRequestTooLarge(err))
				return
			}
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrCannotReadRequestBody(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_RAW_BODY, bodyBytes)
		r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
