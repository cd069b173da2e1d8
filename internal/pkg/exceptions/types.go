package exceptions

import (
	"fmt"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
)

var (
	ErrInvalidConfig = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevInvalidConfig, FormatFirstValidationError(err)))
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCannotReadRequestBody = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotReadRequestBody)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess)
	}
	ErrNotFound = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevCDRGetFHIRResource, resource))
	}
	ErrResourceNotExposed = func(resource string) *CustomError {
		return WrapWithoutError(constvars.StatusNotFound, constvars.ErrClientUnsupportedResource, fmt.Sprintf(constvars.ErrDevFHIRNotExposed, resource))
	}
	ErrUnsupportedResource = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientUnsupportedResource, fmt.Sprintf(constvars.ErrDevFHIRUnsupportedResource, resource))
	}

	// Client data errors, never retried.
	ErrUnprocessableEntity = func(err error, devMessage string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, constvars.ErrClientUnprocessableResource, devMessage)
	}
	ErrNoIdentifier = func(resource string) *CustomError {
		return WrapWithoutError(constvars.StatusUnprocessableEntity, constvars.ErrClientUnprocessableResource, fmt.Sprintf(constvars.ErrDevFHIRResourceNoIdentifer, resource))
	}
	ErrInvalidBundle = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevFHIRInvalidBundle)
	}

	// Clinical data repository
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevSendHTTPRequest)
	}
	ErrTokenAcquisition = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevTokenAcquisitionFailed)
	}
	ErrCreateFHIRResource = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevCDRCreateFHIRResource, resource))
	}
	ErrUpdateFHIRResource = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevCDRUpdateFHIRResource, resource))
	}
	ErrGetFHIRResource = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevCDRGetFHIRResource, resource))
	}
	ErrSearchFHIRResource = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevCDRSearchFHIRResource, resource))
	}
	ErrDecodeResponse = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevCDRDecodeFHIRResource, resource))
	}
	ErrTransactionFHIR = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevCDRTransaction)
	}
	// ErrFHIRResponse maps a non-2xx reply of the clinical data repository
	// onto the status the engine reports. Only 429 and 5xx stay retryable.
	ErrFHIRResponse = func(err error, upstreamStatus int, resource string) *CustomError {
		devMessage := fmt.Sprintf(constvars.ErrDevCDRUnexpectedStatus, upstreamStatus, resource)
		switch {
		case upstreamStatus == constvars.StatusTooManyRequests:
			return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientUpstreamUnavailable, devMessage)
		case upstreamStatus == constvars.StatusNotFound:
			return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, devMessage)
		case upstreamStatus == constvars.StatusUnauthorized || upstreamStatus == constvars.StatusForbidden:
			return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, devMessage)
		case upstreamStatus >= constvars.StatusBadRequest && upstreamStatus < constvars.StatusInternalServerError:
			return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, constvars.ErrClientUnprocessableResource, devMessage)
		default:
			return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, devMessage)
		}
	}
	// ErrRetriesExhausted always reports 502, whatever the last attempt returned.
	ErrRetriesExhausted = func(err error, resource string) *CustomError {
		customErr := BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevCDRRetriesExhausted, resource))
		customErr.StatusCode = constvars.StatusBadGateway
		customErr.ClientMessage = constvars.ErrClientUpstreamUnavailable
		return customErr
	}

	// HL7 v2
	ErrHL7Parse = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidHL7Message, constvars.ErrDevHL7Parse)
	}
	ErrHL7NoResource = func(messageType string) *CustomError {
		return WrapWithoutError(constvars.StatusUnprocessableEntity, constvars.ErrClientUnprocessableResource, fmt.Sprintf(constvars.ErrDevHL7UnsupportedEvent, messageType))
	}

	// MongoDB
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}

	// Minio
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateObject, bucketName))
	}
	ErrMinioEnsureBucket = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToEnsureBucket, bucketName))
	}

	// Redis
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}
	ErrRedisLockBusy = func(key string) *CustomError {
		return WrapWithoutError(constvars.StatusServiceUnavailable, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevRedisLockBusy, key))
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName))
	}
)
