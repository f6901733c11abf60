package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/quotevault/quotevault/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNew_Disabled(t *testing.T) {
	p, err := New(context.Background(), &Config{Enabled: false})

	require.NoError(t, err)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestMiddleware_TagsTraceID(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var logs bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&logs, nil))

	engine := gin.New()
	engine.Use(
		func(c *gin.Context) {
			c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), base))
			c.Next()
		},
		otelgin.Middleware("quotevault-test", otelgin.WithTracerProvider(tp)),
		Middleware(),
	)
	engine.GET("/api/v1/screens/:screen", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("snapshot served")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/screens/feed", nil))

	require.Equal(t, http.StatusOK, w.Code)

	traceID := w.Header().Get(HeaderTraceID)
	require.Len(t, traceID, 32)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, traceID, entry["trace_id"])
}

func TestMiddleware_NoSpanNoHeader(t *testing.T) {
	engine := gin.New()
	engine.Use(Middleware())
	engine.GET("/-/live", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(HeaderTraceID))
}
