package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quotevault/quotevault/internal/adapters/http/handlers"
	"github.com/quotevault/quotevault/internal/adapters/http/middleware"
	"github.com/quotevault/quotevault/internal/app"
	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/mocks"
	"github.com/quotevault/quotevault/internal/platform/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServerConfig(port int, maxRequestSize int64) *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           port,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		MaxRequestSize: maxRequestSize,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServerNew(t *testing.T) {
	cfg := testServerConfig(8787, 1<<20)
	logger := discardLogger()

	srv := New(cfg, logger)

	require.NotNil(t, srv)
	assert.IsType(t, &gin.Engine{}, srv.Engine())
	assert.Equal(t, cfg, srv.Config())
	assert.Equal(t, "127.0.0.1:8787", srv.Addr())
}

func TestServerServe_StopsWithContext(t *testing.T) {
	cfg := testServerConfig(0, 1<<20)
	cfg.ShutdownTimeout = time.Second

	srv := New(cfg, discardLogger())
	srv.Engine().GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- srv.Serve(ctx) }()

	select {
	case <-srv.Ready():
	case err := <-done:
		t.Fatalf("serve returned early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("server never bound")
	}

	assert.NotEqual(t, "127.0.0.1:0", srv.Addr(), "bound address carries the real port")

	resp, err := http.Get("http://" + srv.Addr() + "/ping")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServerServe_PortInUse(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = taken.Close() })

	cfg := testServerConfig(taken.Addr().(*net.TCPAddr).Port, 1<<20)

	err = New(cfg, discardLogger()).Serve(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on")
}

func TestMaxBodySizeMiddleware(t *testing.T) {
	srv := New(testServerConfig(0, 16), discardLogger())
	srv.Engine().POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.JSON(http.StatusOK, gin.H{"received": len(body)})
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"under limit", `{"a":1}`, http.StatusOK},
		{"over limit", strings.Repeat("x", 64), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestNewDefaultRouterConfig(t *testing.T) {
	logger := discardLogger()
	appCfg := &config.AppConfig{Name: "quotevault", Environment: "test", Version: "1.0.0", Platform: "desktop"}
	healthHandler := handlers.NewHealthHandler(nil, handlers.BuildInfo{}, nil)

	cfg := NewDefaultRouterConfig(logger, appCfg, healthHandler)

	assert.Equal(t, logger, cfg.Logger)
	assert.Equal(t, appCfg, cfg.AppConfig)
	assert.Equal(t, healthHandler, cfg.HealthHandler)
	assert.Equal(t, DefaultRequestTimeout, cfg.Timeout)
	assert.Nil(t, cfg.ScreenHandler)
}

// newTestRouter wires the full router around a core whose session store
// yields session.
func newTestRouter(t *testing.T, session *domain.Session, logs *bytes.Buffer) *gin.Engine {
	t.Helper()

	store := mocks.NewMockSessionStore(t)
	store.EXPECT().Load(mock.Anything).Return(session, nil).Maybe()

	core := app.NewCore(app.CoreConfig{
		Auth:          mocks.NewMockAuthProvider(t),
		SessionStore:  store,
		Quotes:        mocks.NewMockQuoteStore(t),
		Favorites:     mocks.NewMockFavoriteStore(t),
		Notifications: mocks.NewMockNotificationService(t),
		Renderer:      mocks.NewMockCardRenderer(t),
		ShareSheet:    mocks.NewMockShareSheet(t),
		Platform:      "desktop",
		Logger:        discardLogger(),
	})
	t.Cleanup(core.Close)

	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		Logger:         slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		AppConfig:      &config.AppConfig{Name: "quotevault"},
		HealthHandler:  handlers.NewHealthHandler(mocks.NewMockHealthRegistry(t), handlers.BuildInfo{}, nil),
		ScreenHandler:  handlers.NewScreenHandler(core),
		SessionHandler: handlers.NewSessionHandler(core),
		ActionHandler:  handlers.NewActionHandler(core),
		Sessions:       core.Sessions,
		Timeout:        time.Second,
	})

	return engine
}

func TestSetupRouter_Routes(t *testing.T) {
	engine := newTestRouter(t, nil, &bytes.Buffer{})

	routes := make(map[string]bool)
	for _, r := range engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /-/live",
		"GET /-/metrics",
		"GET /api/v1/screens/:screen",
		"POST /api/v1/screens/:screen/events",
		"PUT /api/v1/screens/search/filter",
		"DELETE /api/v1/screens/favorites/quotes/:id",
		"POST /api/v1/session/signin",
		"DELETE /api/v1/session",
		"POST /api/v1/reminders/daily",
		"POST /api/v1/quotes/:id/share",
		"GET /api/v1/notices",
		"GET /api/v1/categories",
	} {
		assert.True(t, routes[want], "missing route: %s", want)
	}
}

func TestSetupRouter_RequestLogging(t *testing.T) {
	tests := []struct {
		name       string
		session    *domain.Session
		path       string
		wantLogged bool
		wantUser   bool
	}{
		{name: "anonymous api request", path: "/api/v1/categories", wantLogged: true},
		{
			name:       "signed-in api request carries user",
			session:    &domain.Session{User: domain.User{ID: "user-42"}, AccessToken: "opaque"},
			path:       "/api/v1/categories",
			wantLogged: true,
			wantUser:   true,
		},
		{name: "internal probe is not logged", path: "/-/live"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			engine := newTestRouter(t, tt.session, &logs)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set(middleware.HeaderRequestID, "req-123")

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "req-123", w.Header().Get(middleware.HeaderRequestID))
			assert.NotEmpty(t, w.Header().Get(middleware.HeaderCorrelationID))

			if !tt.wantLogged {
				assert.NotContains(t, logs.String(), "request completed")
				return
			}

			assert.Contains(t, logs.String(), `"request_id":"req-123"`)
			assert.Equal(t, tt.wantUser, strings.Contains(logs.String(), `"user_id":"user-42"`))
		})
	}
}

func TestSetupRouter_RecoversPanics(t *testing.T) {
	engine := newTestRouter(t, nil, &bytes.Buffer{})
	engine.GET("/api/v1/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
