package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotevault/quotevault/internal/adapters/http/dto"
	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/platform/logging"
)

// ContextKeySession is the gin context key for the resolved session.
const ContextKeySession = "session"

// SessionSource yields the current session, or nil when signed out.
type SessionSource interface {
	Current(ctx context.Context) (*domain.Session, error)
}

// RequireSession returns middleware that rejects requests with 401 unless a
// user is signed in. The session is stored on the gin context and its user
// ID is added to the context logger.
func RequireSession(source SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := source.Current(c.Request.Context())
		if err != nil {
			logging.FromContext(c.Request.Context()).Warn("session lookup failed", slog.Any("error", err))
			abortJSON(c, http.StatusServiceUnavailable,
				dto.NewErrorResponse(dto.ErrorCodeUnavailable, "session unavailable").
					WithTraceID(dto.TraceIDFromContext(c.Request.Context())))

			return
		}

		if s == nil {
			abortJSON(c, http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "sign in required").
					WithTraceID(dto.TraceIDFromContext(c.Request.Context())))

			return
		}

		bindSession(c, s)
		c.Next()
	}
}

// OptionalSession returns middleware that resolves the session when there is
// one and otherwise lets the request through as anonymous.
func OptionalSession(source SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s, err := source.Current(c.Request.Context()); err == nil && s != nil {
			bindSession(c, s)
		}

		c.Next()
	}
}

// GetSession returns the session bound by RequireSession or OptionalSession.
func GetSession(c *gin.Context) *domain.Session {
	if v, ok := c.Get(ContextKeySession); ok {
		if s, ok := v.(*domain.Session); ok {
			return s
		}
	}

	return nil
}

func bindSession(c *gin.Context, s *domain.Session) {
	c.Set(ContextKeySession, s)
	c.Request = c.Request.WithContext(logging.WithUserID(c.Request.Context(), s.UserID()))
}
