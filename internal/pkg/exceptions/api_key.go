package exceptions

import (
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
)

func ErrInvalidAPIKey(err error) error {
	return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevInvalidAPIKey)
}

func ErrAPIKeyRequired(err error) error {
	return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAPIKeyRequired)
}

func ErrRequestTooLarge(err error) error {
	return BuildNewCustomError(err, constvars.StatusRequestEntityTooLarge, constvars.ErrClientCannotProcessRequest, constvars.ErrDevRequestTooLarge)
}

func ErrTooManyRequests(err error) error {
	return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrDevTooManyRequests)
}
