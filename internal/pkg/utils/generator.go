package utils

import (
	"github.com/google/uuid"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// NewURNUUID returns a fresh urn:uuid fullUrl for transaction bundle entries.
func NewURNUUID() string {
	return "urn:uuid:" + uuid.NewString()
}
