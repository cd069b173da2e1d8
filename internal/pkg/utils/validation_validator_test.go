package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

func TestValidateStruct(t *testing.T) {
	t.Run("message bundle passes", func(t *testing.T) {
		bundle := fhir_dto.NewBundle("message")
		bundle.ID = "a1b2-c3.d4"
		assert.NoError(t, ValidateStruct(bundle))
	})

	t.Run("unknown bundle type is rejected by json name", func(t *testing.T) {
		err := ValidateStruct(fhir_dto.NewBundle("envelope"))
		require.Error(t, err)

		var validationErrors validator.ValidationErrors
		require.ErrorAs(t, err, &validationErrors)
		assert.Equal(t, "type", validationErrors[0].Field())
		assert.Equal(t, "fhirbundletype", validationErrors[0].Tag())
	})

	t.Run("bundle id outside the FHIR id grammar is rejected", func(t *testing.T) {
		bundle := fhir_dto.NewBundle("transaction")
		bundle.ID = "not/an id"

		var validationErrors validator.ValidationErrors
		require.ErrorAs(t, ValidateStruct(bundle), &validationErrors)
		assert.Equal(t, "id", validationErrors[0].Field())
	})

	t.Run("missing resourceType", func(t *testing.T) {
		var validationErrors validator.ValidationErrors
		require.ErrorAs(t, ValidateStruct(&fhir_dto.FHIRBundle{Type: "message"}), &validationErrors)
		assert.Equal(t, "resourceType", validationErrors[0].Field())
		assert.Equal(t, "required", validationErrors[0].Tag())
	})
}
