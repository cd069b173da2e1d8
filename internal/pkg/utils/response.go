package utils

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

// BuildFHIRResponse writes a pretty-printed FHIR JSON body.
func BuildFHIRResponse(w http.ResponseWriter, code int, resource interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSONCharsetUTF8)
	w.WriteHeader(code)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(resource)
}

// BuildRawFHIRResponse writes an upstream FHIR body unchanged.
func BuildRawFHIRResponse(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSONCharsetUTF8)
	w.WriteHeader(code)
	w.Write(body)
}

func BuildHL7Response(w http.ResponseWriter, code int, message string) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationHL7V2)
	w.WriteHeader(code)
	w.Write([]byte(message))
}

// BuildErrorResponse renders err as an OperationOutcome. Developer detail is
// only included outside production.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	code := constvars.StatusInternalServerError
	clientMessage := constvars.ErrClientSomethingWrongWithApplication

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		clientMessage = customErr.ClientMessage
		for _, location := range customErr.Locations {
			log.Error(customErr.DevMessage,
				zap.String("file", location.File),
				zap.Int("line", location.Line),
				zap.String("function_name", location.FunctionName),
			)
		}
	} else {
		log.Error(err.Error())
	}

	diagnostics := clientMessage
	appEnvironment := GetEnvString("APP_ENV", "development")
	if customErr != nil && appEnvironment != "production" {
		diagnostics = clientMessage + ": " + customErr.DevMessage
	}

	outcome := fhir_dto.NewOperationOutcome()
	outcome.AddIssue(fhir_dto.OperationOutcomeIssue{
		Severity:    constvars.FhirIssueSeverityError,
		Code:        IssueCodeForStatus(code),
		Diagnostics: diagnostics,
	})
	BuildFHIRResponse(w, code, outcome)
}

func IssueCodeForStatus(code int) string {
	switch {
	case code == constvars.StatusUnauthorized || code == constvars.StatusForbidden:
		return constvars.FhirIssueCodeSecurity
	case code == constvars.StatusNotFound:
		return constvars.FhirIssueCodeNotFound
	case code == constvars.StatusBadRequest || code == constvars.StatusUnprocessableEntity:
		return constvars.FhirIssueCodeInvalid
	case code == constvars.StatusGatewayTimeout || code == constvars.StatusBadGateway || code == constvars.StatusServiceUnavailable:
		return constvars.FhirIssueCodeTransient
	case code >= constvars.StatusInternalServerError:
		return constvars.FhirIssueCodeException
	default:
		return constvars.FhirIssueCodeProcessing
	}
}
