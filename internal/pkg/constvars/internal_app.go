package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_RAW_BODY                 ContextKey = "raw_body"
)

const (
	REQUEST_ID_PREFIX = "TIE_SVC_"
)

const (
	AppPublisher = "NHS England"
)

const (
	RedisLockKeyFormat      = "tie:lock:%s:%s|%s"
	RedisReferenceKeyFormat = "tie:ref:%s:%s|%s"
)

const (
	MongoCollectionHL7Messages = "hl7_messages"
)

// Object user metadata keys set on archived Binary payloads.
const (
	StorageMetadataRequestID  = "Request-Id"
	StorageMetadataResourceID = "Fhir-Binary-Id"
)
