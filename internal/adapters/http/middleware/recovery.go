package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/quotevault/quotevault/internal/adapters/http/dto"
	"github.com/quotevault/quotevault/internal/platform/logging"
)

// Recovery returns middleware that turns a handler panic into a 500 with the
// standard error envelope and logs the stack at ERROR. It must run first.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			traceID := dto.TraceIDFromContext(c.Request.Context())

			logging.FromContext(c.Request.Context()).Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			abortJSON(c, http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred").WithTraceID(traceID))
		}()

		c.Next()
	}
}

// abortJSON aborts with a JSON body unless the handler already wrote one.
func abortJSON(c *gin.Context, status int, body any) {
	if c.Writer.Written() {
		c.Abort()
		return
	}

	c.AbortWithStatusJSON(status, body)
}
