package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/quotevault/quotevault/internal/adapters/clients"
	"github.com/quotevault/quotevault/internal/domain"
)

// ErrorResponse is the union of the backend's error bodies.
//
// The data API answers {"code":"23505","message":"…","details":"…","hint":"…"};
// the auth API answers either {"error":"invalid_grant","error_description":"…"}
// or {"code":400,"error_code":"…","msg":"…"}.
type ErrorResponse struct {
	Code             json.RawMessage `json:"code,omitempty"`
	Message          string          `json:"message,omitempty"`
	Details          string          `json:"details,omitempty"`
	Hint             string          `json:"hint,omitempty"`
	ErrorName        string          `json:"error,omitempty"`
	ErrorDescription string          `json:"error_description,omitempty"`
	ErrorCode        string          `json:"error_code,omitempty"`
	Msg              string          `json:"msg,omitempty"`
}

// GetCode returns the most specific error code present.
func (e *ErrorResponse) GetCode() string {
	if e.ErrorCode != "" {
		return e.ErrorCode
	}

	if len(e.Code) > 0 {
		var s string
		if err := json.Unmarshal(e.Code, &s); err == nil {
			return s
		}
	}

	return e.ErrorName
}

// GetMessage returns the human-readable message, preferring the auth API's
// description fields.
func (e *ErrorResponse) GetMessage() string {
	for _, m := range []string{e.ErrorDescription, e.Msg, e.Message} {
		if m != "" {
			return m
		}
	}

	return e.ErrorName
}

// Backend error codes with a domain meaning.
const (
	// CodeUniqueViolation is Postgres' unique constraint failure.
	CodeUniqueViolation = "23505"
	// CodeForeignKeyViolation is Postgres' foreign key failure.
	CodeForeignKeyViolation = "23503"
	// CodeInsufficientPrivilege is a row-level security rejection.
	CodeInsufficientPrivilege = "42501"
	// CodeNoSingleRow is the data API's "singular response with 0 rows".
	CodeNoSingleRow = "PGRST116"
	// CodeJWTExpired is the data API's expired-token code.
	CodeJWTExpired = "PGRST301"
	// CodeInvalidGrant is the auth API's rejected-credentials code.
	CodeInvalidGrant = "invalid_grant"
)

// ParseErrorResponse attempts to parse an error response body.
// Returns nil if the body is empty or cannot be parsed.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.GetCode() == "" && errResp.GetMessage() == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError maps an HTTP response to a domain error.
// This function handles:
//   - HTTP status codes → domain errors
//   - Error response body parsing for additional context
//   - Client-level errors (circuit breaker, retries exhausted)
//
// entityID is used for NotFoundError.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation, entityID string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var errResp *ErrorResponse
	if resp.Body != nil {
		errResp = ParseErrorResponse(resp.Body)
	}

	return mapStatusCode(resp.StatusCode, errResp, serviceName, operation, entityID)
}

// mapClientError translates client-level errors to domain errors.
func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s skipped: %v", operation, err))

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

// mapStatusCode translates HTTP status codes to domain errors. Backend codes
// win over the status when both are present.
func mapStatusCode(status int, errResp *ErrorResponse, serviceName, operation, entityID string) error {
	message := defaultMessageForStatus(status, operation)
	code := ""

	if errResp != nil {
		code = errResp.GetCode()
		if m := errResp.GetMessage(); m != "" {
			message = m
		}
	}

	if err := mapBackendCode(code, message, serviceName, operation, entityID); err != nil {
		return err
	}

	switch status {
	case http.StatusNotFound, http.StatusNotAcceptable:
		return domain.NewNotFoundError(serviceName, entityID)

	case http.StatusConflict:
		return domain.NewConflictError(serviceName, message)

	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.NewValidationError("", message)

	case http.StatusUnauthorized:
		return domain.NewUnauthenticatedError(message)

	case http.StatusForbidden:
		return domain.NewForbiddenError(operation, message)

	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")

	default:
		if status >= http.StatusInternalServerError {
			return domain.NewUnavailableError(serviceName, message)
		}

		return domain.NewValidationError("", message)
	}
}

// mapBackendCode returns nil when code carries no domain meaning.
func mapBackendCode(code, message, serviceName, operation, entityID string) error {
	switch strings.TrimSpace(code) {
	case CodeUniqueViolation:
		return domain.NewConflictError(serviceName, message)
	case CodeNoSingleRow:
		return domain.NewNotFoundError(serviceName, entityID)
	case CodeForeignKeyViolation:
		return domain.NewValidationError("", message)
	case CodeInsufficientPrivilege:
		return domain.NewForbiddenError(operation, message)
	case CodeJWTExpired:
		return domain.NewUnauthenticatedError(message)
	default:
		return nil
	}
}

// defaultMessageForStatus returns a default message for an HTTP status.
func defaultMessageForStatus(status int, operation string) string {
	switch status {
	case http.StatusNotFound, http.StatusNotAcceptable:
		return "resource not found"
	case http.StatusConflict:
		return "resource conflict"
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusForbidden:
		return "access denied"
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusTooManyRequests:
		return "rate limit exceeded"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	default:
		return fmt.Sprintf("%s failed with status %d", operation, status)
	}
}
