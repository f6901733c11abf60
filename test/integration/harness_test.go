//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apihttp "github.com/quotevault/quotevault/internal/adapters/http"
	"github.com/quotevault/quotevault/internal/adapters/http/handlers"
	"github.com/quotevault/quotevault/internal/bootstrap"
	"github.com/quotevault/quotevault/internal/platform/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// harness is a running local API wired to a fake backend.
type harness struct {
	backend *fakeBackend
	runtime *bootstrap.Runtime
	api     *httptest.Server
	client  *http.Client
	dir     string
}

// harnessConfig mirrors configs/test.yaml with paths under dir.
func harnessConfig(dir, backendURL, platform string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "quotevault", Version: "integration", Environment: "test", Platform: platform},
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   5 * time.Second,
			IdleTimeout:    5 * time.Second,
			MaxRequestSize: 1 << 20,
		},
		Client: config.ClientConfig{
			Timeout: 2 * time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     1,
				InitialInterval: 5 * time.Millisecond,
				MaxInterval:     20 * time.Millisecond,
				Multiplier:      2,
			},
			CircuitBreaker: config.CircuitBreakerConfig{MaxFailures: 100, Timeout: time.Second, HalfOpenLimit: 1},
			Transport:      config.TransportConfig{MaxIdleConns: 10, MaxIdleConnsPerHost: 10, IdleConnTimeout: 5 * time.Second},
		},
		Backend:  config.BackendConfig{Name: "backend", BaseURL: backendURL, AnonKey: anonKey},
		Search:   config.SearchConfig{Debounce: 50 * time.Millisecond, Limit: 20},
		Reminder: config.ReminderConfig{Hour: 9, Title: "Quote of the Day", Body: "Tap to see today's inspiration!", Permission: "granted"},
		Share: config.ShareConfig{
			OutputDir: filepath.Join(dir, "cards"),
			OutboxDir: filepath.Join(dir, "outbox"),
		},
		Session: config.SessionConfig{Path: filepath.Join(dir, "session.db")},
	}
}

func startHarness(platform string) (*harness, error) {
	dir, err := os.MkdirTemp("", "quotevault-integration-*")
	if err != nil {
		return nil, err
	}

	backend := newFakeBackend()
	cfg := harnessConfig(dir, backend.URL(), platform)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rt, err := bootstrap.New(context.Background(), bootstrap.Options{Config: cfg, Logger: logger})
	if err != nil {
		backend.Close()
		_ = os.RemoveAll(dir)

		return nil, err
	}

	engine := gin.New()
	apihttp.SetupRouter(engine, apihttp.RouterConfig{
		Logger:         logger,
		AppConfig:      &cfg.App,
		HealthHandler:  handlers.NewHealthHandler(rt.Health, handlers.NewBuildInfo("integration", "none", "now"), rt.Metrics),
		ScreenHandler:  handlers.NewScreenHandler(rt.Core),
		SessionHandler: handlers.NewSessionHandler(rt.Core),
		ActionHandler:  handlers.NewActionHandler(rt.Core),
		Sessions:       rt.Core.Sessions,
		Timeout:        5 * time.Second,
	})

	return &harness{
		backend: backend,
		runtime: rt,
		api:     httptest.NewServer(engine),
		client:  &http.Client{Timeout: 10 * time.Second},
		dir:     dir,
	}, nil
}

// newHarness starts a harness that is torn down with t.
func newHarness(t *testing.T, platform string) *harness {
	t.Helper()

	h, err := startHarness(platform)
	if err != nil {
		t.Fatalf("starting harness: %v", err)
	}

	t.Cleanup(h.Close)

	return h
}

func (h *harness) Close() {
	h.api.Close()
	_ = h.runtime.Close()
	h.backend.Close()
	_ = os.RemoveAll(h.dir)
}

// call sends a JSON request to the local API and returns the status and body.
func (h *harness) call(method, path string, body any) (int, []byte, error) {
	var reader io.Reader = http.NoBody

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}

		reader = bytes.NewReader(b)
	}

	return h.callRaw(method, path, reader)
}

func (h *harness) callRaw(method, path string, body io.Reader) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, h.api.URL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response body: %w", err)
	}

	return resp.StatusCode, out, nil
}

func (h *harness) signIn(email, password string) error {
	status, body, err := h.call(http.MethodPost, "/api/v1/session/signin", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	if status != http.StatusOK {
		return fmt.Errorf("sign in: status %d: %s", status, body)
	}

	return nil
}
