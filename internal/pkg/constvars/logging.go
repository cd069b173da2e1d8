package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseLengthKey = "response_length"
	LoggingResourceTypeKey   = "resource_type"
	LoggingResourceIDKey     = "resource_id"
	LoggingIdentifierKey     = "identifier"
	LoggingEventCodeKey      = "event_code"
	LoggingAttemptKey        = "attempt"
	LoggingControlIDKey      = "control_id"
	LoggingMessageTypeKey    = "message_type"
	LoggingStatusCodeKey     = "status_code"
	LoggingURLKey            = "url"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingDurationKey       = "duration"
	LoggingCountKey          = "count"
	LoggingAckCodeKey        = "ack_code"
	LoggingBucketKey         = "bucket"
	LoggingObjectKey         = "object"
	LoggingQueueKey          = "queue"
	LoggingReferenceKey      = "reference"
	LoggingActionKey         = "action"
	LoggingContentTypeKey    = "content_type"
	LoggingSizeKey           = "size"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingSuccessKey        = "success"
)

const (
	LoggingRedisKey              = "redis_key"
	LoggingLockExpirationTimeKey = "lock_expiration"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
)
