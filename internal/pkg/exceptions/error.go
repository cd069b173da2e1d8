package exceptions

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	loc := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, loc.File, loc.Line, loc.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	var existing *CustomError
	if errors.As(err, &existing) {
		// keep the innermost status so a 422 raised deep in a call chain is not masked
		return &CustomError{
			StatusCode:    existing.StatusCode,
			ClientMessage: existing.ClientMessage,
			DevMessage:    fmt.Sprintf("%s: %s", devMessage, existing.DevMessage),
			Locations:     append([]Location{getLocation(3)}, existing.Locations...),
			Err:           err,
		}
	}

	dev := devMessage
	if err != nil {
		dev = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    dev,
		Locations:     []Location{getLocation(3)},
		Err:           err,
	}
}

func WrapWithoutError(statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(2)},
	}
}

// StatusCode returns the HTTP status carried by err: 200 for nil, 500 for
// errors that are not a CustomError.
func StatusCode(err error) int {
	if err == nil {
		return constvars.StatusOK
	}
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return constvars.StatusInternalServerError
}

// IsRetryable reports whether err is a transient failure worth another attempt.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var customErr *CustomError
	if errors.As(err, &customErr) {
		switch {
		case customErr.StatusCode == constvars.StatusTooManyRequests:
			return true
		case customErr.StatusCode >= constvars.StatusInternalServerError:
			return true
		default:
			return false
		}
	}
	return true
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
