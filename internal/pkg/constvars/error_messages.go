package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"url":      "must be a valid URL",
	"oneof":    "must be one of [%s]",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"dive":     "contains an invalid element",
	"eq":       "must be %s",

	"fhirid":         "must be a FHIR id of 1 to 64 letters, digits, '-' or '.'",
	"fhirbundletype": "must be a FHIR Bundle type",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"oneof": true,
	"min":   true,
	"max":   true,
	"gt":    true,
	"gte":   true,
	"eq":    true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientUnprocessableResource         = "the submitted resource cannot be processed"
	ErrClientUpstreamUnavailable           = "the clinical data repository is unavailable"
	ErrClientResourceNotFound              = "the requested resource was not found"
	ErrClientUnsupportedResource           = "the requested resource type is not supported"
	ErrClientInvalidHL7Message             = "the HL7 v2 message could not be parsed"
	ErrClientTooManyRequests               = "too many requests, try again later"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevInvalidConfig          = "invalid configuration: %s"
	ErrDevCannotParseJSON        = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON      = "cannot convert struct or other data types to JSON"
	ErrDevCreateHTTPRequest      = "failed to create HTTP request"
	ErrDevSendHTTPRequest        = "failed to send HTTP request"
	ErrDevCannotReadRequestBody  = "cannot read request body"
	ErrDevValidationFailed       = "validation failed"
	ErrDevUnauthorized           = "unauthorized access"
	ErrDevInvalidAPIKey          = "invalid API key"
	ErrDevAPIKeyRequired         = "API key is required"
	ErrDevRequestTooLarge        = "request body exceeds the configured limit"
	ErrDevTooManyRequests        = "rate limit exceeded"
	ErrDevTokenAcquisitionFailed = "failed to acquire bearer token for the clinical data repository"

	// Clinical data repository messages
	ErrDevCDRCreateFHIRResource   = "failed to create FHIR %s on the clinical data repository"
	ErrDevCDRUpdateFHIRResource   = "failed to update FHIR %s on the clinical data repository"
	ErrDevCDRGetFHIRResource      = "failed to get FHIR %s from the clinical data repository"
	ErrDevCDRSearchFHIRResource   = "failed to search FHIR %s on the clinical data repository"
	ErrDevCDRDecodeFHIRResource   = "failed to decode FHIR %s response from the clinical data repository"
	ErrDevCDRTransaction          = "failed to post transaction bundle to the clinical data repository"
	ErrDevCDRRetriesExhausted     = "retries exhausted for FHIR %s"
	ErrDevCDRUnexpectedStatus     = "clinical data repository returned %d for %s"
	ErrDevFHIRResourceNoIdentifer = "%s has no identifier"
	ErrDevFHIRUnsupportedResource = "no upsert collaborator registered for %s"
	ErrDevFHIRMissingGP           = "patient must have a general practitioner"
	ErrDevFHIRInvalidBundle       = "invalid bundle"
	ErrDevFHIRNotTransaction      = "payload is not a FHIR transaction bundle"
	ErrDevFHIRBinaryData          = "Binary %s data is not valid base64"
	ErrDevFHIRNotExposed          = "%s is not exposed on the FHIR surface"

	// HL7 v2 messages
	ErrDevHL7Parse             = "failed to parse HL7 v2 message"
	ErrDevHL7UnsupportedEvent  = "unsupported HL7 v2 message %s"
	ErrDevHL7NoResourceDerived = "no FHIR resource could be derived from HL7 v2 message"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToEnsureBucket = "failed to check or create minio bucket '%s'"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetData    = "failed to GET data from redis"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"
	ErrDevRedisLockBusy   = "lock %s is held by another request"
	ErrDevRedisUnlock     = "failed to release redis lock"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"

	// MongoDB messages
	ErrDevDBFailedToInsertDocument = "failed to insert document into database"
	ErrDevDBFailedToFindDocument   = "failed when do find document on database"

	// Server messages
	ErrDevServerProcess          = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerNotFound         = "resource not found"
)

const (
	ErrEnvParsing = "Error parsing %s: %v, will use default value"
)

const (
	ResponseUnknown = "unknown"
)
