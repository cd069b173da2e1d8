package exceptions

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
)

func FormatAllValidationErrors(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	var messages []string
	for _, fieldErr := range validationErrors {
		messages = append(messages, formatFieldError(fieldErr))
	}
	return strings.Join(messages, ", ")
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		return formatFieldError(validationErrors[0])
	}
	return constvars.ErrDevInvalidInput
}

func formatFieldError(fieldErr validator.FieldError) string {
	fieldName := fieldErr.Field()
	if first := fieldName[:1]; first == strings.ToUpper(first) {
		fieldName = strings.ToLower(fieldName)
	}
	tag := fieldErr.Tag()
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		customMessage = "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		if tag == "oneof" {
			customMessage = strings.Replace(customMessage, "%s", strings.Join(strings.Fields(fieldErr.Param()), ", "), 1)
		} else {
			customMessage = strings.Replace(customMessage, "%s", fieldErr.Param(), 1)
		}
	}
	return fieldName + " " + customMessage
}
