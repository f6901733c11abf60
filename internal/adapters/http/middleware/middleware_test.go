package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const uuidPattern = `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`

// withLogger installs a JSON logger writing to buf as the context logger.
func withLogger(buf *bytes.Buffer) gin.HandlerFunc {
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	}
}

type sessionSourceFunc func(ctx context.Context) (*domain.Session, error)

func (f sessionSourceFunc) Current(ctx context.Context) (*domain.Session, error) {
	return f(ctx)
}

func fixedSession(s *domain.Session, err error) SessionSource {
	return sessionSourceFunc(func(context.Context) (*domain.Session, error) { return s, err })
}

func TestIDMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		middleware gin.HandlerFunc
		header     string
		fromGin    func(*gin.Context) string
		fromCtx    func(context.Context) string
	}{
		{"request id", RequestID(), HeaderRequestID, GetRequestID, RequestIDFromContext},
		{"correlation id", CorrelationID(), HeaderCorrelationID, GetCorrelationID, CorrelationIDFromContext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cases := []struct {
				name     string
				incoming string
				wantSame bool
			}{
				{"generates UUID when absent", "", false},
				{"passes through caller value", "caller-123", true},
				{"replaces oversized value", strings.Repeat("x", maxIDLength+1), false},
			}

			for _, tc := range cases {
				var ginID, ctxID string

				router := gin.New()
				router.Use(tt.middleware)
				router.GET("/test", func(c *gin.Context) {
					ginID = tt.fromGin(c)
					ctxID = tt.fromCtx(c.Request.Context())
					c.Status(http.StatusOK)
				})

				req := httptest.NewRequest(http.MethodGet, "/test", nil)
				if tc.incoming != "" {
					req.Header.Set(tt.header, tc.incoming)
				}

				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				assert.Equal(t, http.StatusOK, w.Code, tc.name)
				assert.Equal(t, w.Header().Get(tt.header), ginID, tc.name)
				assert.Equal(t, ginID, ctxID, tc.name)

				if tc.wantSame {
					assert.Equal(t, tc.incoming, ginID, tc.name)
				} else {
					assert.Regexp(t, uuidPattern, ginID, tc.name)
				}
			}
		})
	}
}

func TestGetIDs_WithoutMiddleware(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(ContextKeyRequestID, 42)

	assert.Empty(t, GetRequestID(c))
	assert.Empty(t, GetCorrelationID(c))
}

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		status    int
		skip      []string
		wantLevel string
		wantLog   bool
	}{
		{"success at info", "/api/v1/screens/feed", http.StatusOK, nil, "INFO", true},
		{"client error at warn", "/api/v1/screens/feed", http.StatusBadRequest, nil, "WARN", true},
		{"server error at error", "/api/v1/screens/feed", http.StatusInternalServerError, nil, "ERROR", true},
		{"internal routes skipped", "/-/live", http.StatusOK, nil, "", false},
		{"listed path skipped", "/api/v1/notices", http.StatusOK, []string{"/api/v1/notices"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			router := gin.New()
			router.Use(withLogger(&buf), Logging(tt.skip...))
			router.GET(tt.path, func(c *gin.Context) { c.Status(tt.status) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path+"?q=life", nil))

			assert.Equal(t, tt.status, w.Code)

			if !tt.wantLog {
				assert.Empty(t, buf.String())
				return
			}

			out := buf.String()
			assert.Contains(t, out, `"msg":"request completed"`)
			assert.Contains(t, out, `"level":"`+tt.wantLevel+`"`)
			assert.Contains(t, out, `"path":"`+tt.path+`?q=life"`)
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	t.Run("passes through", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery())
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("panic becomes 500 envelope", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		router := gin.New()
		router.Use(withLogger(&buf), Recovery())
		router.GET("/test", func(*gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"INTERNAL_ERROR"`)
		assert.Contains(t, buf.String(), "panic recovered")
	})

	t.Run("keeps already written response", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery())
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusAccepted, "partial")
			panic("late")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		timeout      time.Duration
		skip         []string
		wantDeadline bool
	}{
		{"sets deadline", time.Second, nil, true},
		{"zero disables", 0, nil, false},
		{"skipped route", time.Second, []string{"/test"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var hasDeadline bool

			router := gin.New()
			router.Use(Timeout(tt.timeout, tt.skip...))
			router.GET("/test", func(c *gin.Context) {
				_, hasDeadline = c.Request.Context().Deadline()
				c.Status(http.StatusOK)
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.wantDeadline, hasDeadline)
		})
	}
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	signedIn := &domain.Session{User: domain.User{ID: "user-1", Email: "ada@example.com"}, AccessToken: "tok"}

	tests := []struct {
		name       string
		source     SessionSource
		wantStatus int
		wantCode   string
	}{
		{"signed in", fixedSession(signedIn, nil), http.StatusOK, ""},
		{"signed out", fixedSession(nil, nil), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"store failure", fixedSession(nil, errors.New("disk")), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var (
				buf  bytes.Buffer
				seen *domain.Session
			)

			router := gin.New()
			router.Use(withLogger(&buf), RequireSession(tt.source))
			router.GET("/me", func(c *gin.Context) {
				seen = GetSession(c)
				logging.FromContext(c.Request.Context()).Info("profile")
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantCode != "" {
				assert.Contains(t, w.Body.String(), tt.wantCode)
				assert.Nil(t, seen)

				return
			}

			require.NotNil(t, seen)
			assert.Equal(t, "user-1", seen.UserID())
			assert.Contains(t, buf.String(), `"user_id":"user-1"`)
		})
	}
}

func TestOptionalSession(t *testing.T) {
	t.Parallel()

	signedIn := &domain.Session{User: domain.User{ID: "user-1"}}

	tests := []struct {
		name     string
		source   SessionSource
		wantUser string
	}{
		{"signed in", fixedSession(signedIn, nil), "user-1"},
		{"anonymous", fixedSession(nil, nil), ""},
		{"lookup error is anonymous", fixedSession(nil, errors.New("disk")), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var user string

			router := gin.New()
			router.Use(OptionalSession(tt.source))
			router.GET("/feed", func(c *gin.Context) {
				user = GetSession(c).UserID()
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantUser, user)
		})
	}
}
