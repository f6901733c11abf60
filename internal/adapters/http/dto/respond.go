package dto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/platform/logging"
)

// TraceIDFromContext returns the active span's trace ID, or "".
func TraceIDFromContext(ctx context.Context) string {
	if span := trace.SpanFromContext(ctx); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}

// GetTraceID returns the trace ID of the request, or "".
func GetTraceID(c *gin.Context) string {
	return TraceIDFromContext(c.Request.Context())
}

// errorRule maps one class of error to a code. message builds the
// user-facing text; a nil message uses err.Error().
type errorRule struct {
	match   func(error) bool
	code    string
	message func(error) string
}

func fixed(text string) func(error) string {
	return func(error) string { return text }
}

func isDeadline(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// errorRules is checked in order. Validation and auth-provider messages are
// shown to the user as-is.
var errorRules = []errorRule{
	{match: domain.IsValidation, code: ErrorCodeValidation, message: func(err error) string {
		return domain.UserMessage(err, err.Error())
	}},
	{match: domain.IsUnauthenticated, code: ErrorCodeUnauthorized, message: func(err error) string {
		return domain.UserMessage(err, "sign in required")
	}},
	{match: domain.IsForbidden, code: ErrorCodeForbidden},
	{match: domain.IsNotFound, code: ErrorCodeNotFound},
	{match: domain.IsConflict, code: ErrorCodeConflict},
	{match: domain.IsUnsupported, code: ErrorCodeUnsupported},
	{match: domain.IsUnavailable, code: ErrorCodeUnavailable},
	{match: isDeadline, code: ErrorCodeTimeout, message: fixed("request timeout exceeded")},
}

// MapDomainError returns the status and body for err. Errors no rule matches
// are internal and their text is withheld.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	for _, rule := range errorRules {
		if !rule.match(err) {
			continue
		}

		msg := err.Error()
		if rule.message != nil {
			msg = rule.message(err)
		}

		resp := NewErrorResponse(rule.code, msg)

		var invalid *domain.ValidationError
		if rule.code == ErrorCodeValidation && errors.As(err, &invalid) && invalid.Field != "" {
			resp.Error.Details = map[string]string{invalid.Field: invalid.Message}
		}

		return HTTPStatusFromCode(rule.code), resp
	}

	return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
}

// HandleError writes the mapped error response with the trace ID. Internal
// errors are logged with their detail, which the response never carries.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.WithTraceID(GetTraceID(c))

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("internal error",
			slog.Any("error", err),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.JSON(status, resp)
}

// HandleBindError writes a 400 for a request body that failed to bind or
// validate, with field details when there are any.
func HandleBindError(c *gin.Context, err error) {
	if IsValidationError(err) {
		c.JSON(http.StatusBadRequest, NewErrorResponseWithDetails(
			ErrorCodeValidation,
			"request validation failed",
			ValidationErrors(err),
		).WithTraceID(GetTraceID(c)))

		return
	}

	c.JSON(http.StatusBadRequest, NewErrorResponse(ErrorCodeBadRequest, "malformed request body").WithTraceID(GetTraceID(c)))
}
