// Package dto holds the JSON request and response shapes of the local API.
package dto

import "net/http"

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail describes what went wrong. Details maps request fields to
// their problem and is only set for validation failures.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Machine-readable error codes.
const (
	ErrorCodeBadRequest   = "BAD_REQUEST"
	ErrorCodeValidation   = "VALIDATION_ERROR"
	ErrorCodeUnauthorized = "UNAUTHORIZED"
	ErrorCodeForbidden    = "FORBIDDEN"
	ErrorCodeNotFound     = "NOT_FOUND"
	ErrorCodeConflict     = "CONFLICT"
	ErrorCodeInternal     = "INTERNAL_ERROR"
	ErrorCodeUnsupported  = "UNSUPPORTED"
	ErrorCodeUnavailable  = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout      = "TIMEOUT"
)

var codeStatus = map[string]int{
	ErrorCodeBadRequest:   http.StatusBadRequest,
	ErrorCodeValidation:   http.StatusBadRequest,
	ErrorCodeUnauthorized: http.StatusUnauthorized,
	ErrorCodeForbidden:    http.StatusForbidden,
	ErrorCodeNotFound:     http.StatusNotFound,
	ErrorCodeConflict:     http.StatusConflict,
	ErrorCodeInternal:     http.StatusInternalServerError,
	ErrorCodeUnsupported:  http.StatusNotImplemented,
	ErrorCodeUnavailable:  http.StatusServiceUnavailable,
	ErrorCodeTimeout:      http.StatusGatewayTimeout,
}

// HTTPStatusFromCode returns the status a code is served with. Unknown codes
// are internal errors.
func HTTPStatusFromCode(code string) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}

func NewErrorResponse(code, message string) *ErrorResponse {
	return NewErrorResponseWithDetails(code, message, nil)
}

func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}

// WithTraceID sets the trace ID and returns e for chaining.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}
