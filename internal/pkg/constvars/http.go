package constvars

const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodPatch  = "PATCH"
	MethodDelete = "DELETE"
)

const (
	MIMETextPlain           = "text/plain"
	MIMEApplicationJSON     = "application/json"
	MIMEApplicationFHIRJSON = "application/fhir+json"
	MIMEApplicationFHIRXML  = "application/fhir+xml"
	MIMEApplicationHL7V2    = "x-application/hl7-v2+er7"
	MIMEApplicationAmzJSON  = "application/x-amz-json-1.1"
	MIMEOctetStream         = "application/octet-stream"

	MIMETextPlainCharsetUTF8           = "text/plain; charset=utf-8"
	MIMEApplicationJSONCharsetUTF8     = "application/json; charset=utf-8"
	MIMEApplicationFHIRJSONCharsetUTF8 = "application/fhir+json; charset=utf-8"
)

const (
	StatusOK                    = 200
	StatusCreated               = 201
	StatusAccepted              = 202
	StatusNoContent             = 204
	StatusBadRequest            = 400
	StatusUnauthorized          = 401
	StatusForbidden             = 403
	StatusNotFound              = 404
	StatusMethodNotAllowed      = 405
	StatusConflict              = 409
	StatusGone                  = 410
	StatusPreconditionFailed    = 412
	StatusRequestEntityTooLarge = 413
	StatusUnsupportedMedia      = 415
	StatusUnprocessableEntity   = 422
	StatusTooManyRequests       = 429

	StatusInternalServerError = 500
	StatusNotImplemented      = 501
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	HeaderAuthorization = "Authorization"
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderLocation      = "Location"
	HeaderPrefer        = "Prefer"
	HeaderETag          = "ETag"
	HeaderUserAgent     = "User-Agent"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXAPIKey       = "x-api-key"
	HeaderXAmzTarget    = "X-Amz-Target"
	HeaderXForwardedFor = "X-Forwarded-For"
)

const (
	AuthBearerPrefix = "Bearer "
)

const (
	URLParamResourceType = "resourceType"
	URLParamID           = "id"
)

const (
	PreferReturnRepresentation = "return=representation"
)
