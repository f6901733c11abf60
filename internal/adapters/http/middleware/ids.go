// Package middleware provides the Gin middleware in front of the QuoteVault
// screen API: ID propagation, request logging, panic recovery, deadlines and
// the session guard.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quotevault/quotevault/internal/platform/logging"
)

const (
	// HeaderRequestID identifies one API call.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID groups calls. A shell driving several screens can
	// send one ID for a whole user action.
	HeaderCorrelationID = "X-Correlation-ID"

	// Gin context keys the IDs are published under.
	ContextKeyRequestID     = "request_id"
	ContextKeyCorrelationID = "correlation_id"
)

// maxIDLength bounds caller-supplied IDs; longer values are replaced.
const maxIDLength = 128

// callIDs travels in the request context and on to the backend client.
type callIDs struct {
	request     string
	correlation string
}

type callIDsKey struct{}

func idsFrom(ctx context.Context) callIDs {
	if ctx == nil {
		return callIDs{}
	}

	ids, _ := ctx.Value(callIDsKey{}).(callIDs)

	return ids
}

// RequestIDFromContext returns the request ID the backend client forwards, or "".
func RequestIDFromContext(ctx context.Context) string {
	return idsFrom(ctx).request
}

// CorrelationIDFromContext returns the correlation ID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return idsFrom(ctx).correlation
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	ids := idsFrom(ctx)
	ids.request = id

	return context.WithValue(ctx, callIDsKey{}, ids)
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	ids := idsFrom(ctx)
	ids.correlation = id

	return context.WithValue(ctx, callIDsKey{}, ids)
}

// idHeader is one propagated ID: read from the request header or minted,
// echoed on the response, and stored on both contexts.
type idHeader struct {
	header string
	ginKey string
	attach func(ctx context.Context, id string) context.Context
}

var (
	requestIDHeader = idHeader{
		header: HeaderRequestID,
		ginKey: ContextKeyRequestID,
		attach: func(ctx context.Context, id string) context.Context {
			return logging.WithRequestID(ContextWithRequestID(ctx, id), id)
		},
	}

	correlationIDHeader = idHeader{
		header: HeaderCorrelationID,
		ginKey: ContextKeyCorrelationID,
		attach: func(ctx context.Context, id string) context.Context {
			return logging.WithCorrelationID(ContextWithCorrelationID(ctx, id), id)
		},
	}
)

func (h idHeader) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(h.header)
		if !acceptableID(id) {
			id = uuid.NewString()
		}

		c.Set(h.ginKey, id)
		c.Header(h.header, id)
		c.Request = c.Request.WithContext(h.attach(c.Request.Context(), id))

		c.Next()
	}
}

func (h idHeader) from(c *gin.Context) string {
	return c.GetString(h.ginKey)
}

// acceptableID admits non-empty, bounded, printable ASCII without spaces.
func acceptableID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}

	return true
}

// RequestID propagates X-Request-ID. The ID is echoed in the response,
// attached to the context logger, and forwarded on backend calls.
func RequestID() gin.HandlerFunc { return requestIDHeader.handler() }

// CorrelationID propagates X-Correlation-ID the same way.
func CorrelationID() gin.HandlerFunc { return correlationIDHeader.handler() }

// GetRequestID returns the request ID, or "" if the middleware did not run.
func GetRequestID(c *gin.Context) string { return requestIDHeader.from(c) }

func GetCorrelationID(c *gin.Context) string { return correlationIDHeader.from(c) }
