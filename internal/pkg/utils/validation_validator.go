package utils

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
)

var fhirIDPattern = regexp.MustCompile(`^[A-Za-z0-9\-.]{1,64}$`)

var fhirBundleTypes = map[string]bool{
	constvars.FhirBundleTypeDocument:            true,
	constvars.FhirBundleTypeMessage:             true,
	constvars.FhirBundleTypeTransaction:         true,
	constvars.FhirBundleTypeTransactionResponse: true,
	constvars.FhirBundleTypeBatch:               true,
	constvars.FhirBundleTypeBatchResponse:       true,
	constvars.FhirBundleTypeHistory:             true,
	constvars.FhirBundleTypeSearchSet:           true,
	constvars.FhirBundleTypeCollection:          true,
}

var validate = newValidator()

// newValidator reports fields by their JSON name so OperationOutcome
// diagnostics match the wire format.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	v.RegisterValidation("fhirid", func(fl validator.FieldLevel) bool {
		return fhirIDPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("fhirbundletype", func(fl validator.FieldLevel) bool {
		return fhirBundleTypes[fl.Field().String()]
	})
	return v
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
