// Package bootstrap wires the adapters into an app.Core. The server and the
// CLI share it so both drive the same backend, session store and metrics.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/quotevault/quotevault/internal/adapters/clients"
	"github.com/quotevault/quotevault/internal/adapters/clients/acl"
	"github.com/quotevault/quotevault/internal/adapters/notify"
	"github.com/quotevault/quotevault/internal/adapters/share"
	"github.com/quotevault/quotevault/internal/adapters/storage/sqlite"
	"github.com/quotevault/quotevault/internal/app"
	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/platform/config"
	"github.com/quotevault/quotevault/internal/platform/logging"
	"github.com/quotevault/quotevault/internal/platform/telemetry"
	"github.com/quotevault/quotevault/internal/ports"
)

// CheckTimeout bounds a one-shot readiness check run outside the server.
const CheckTimeout = 5 * time.Second

// Options configures New.
type Options struct {
	Config *config.Config
	Logger *slog.Logger

	// Prompt answers notification permission requests under the prompt
	// policy. Nil grants them.
	Prompt notify.PromptFunc
}

// Runtime is a wired core with the resources it owns.
type Runtime struct {
	Core    *app.Core
	Health  *ports.DefaultHealthRegistry
	Metrics *prometheus.Registry

	closers []func() error
}

// New builds the runtime described by opts.Config.
func New(ctx context.Context, opts Options) (*Runtime, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("bootstrap: config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rt := &Runtime{
		Health:  ports.NewHealthRegistry(),
		Metrics: prometheus.NewRegistry(),
	}

	rt.Metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	recorder, err := telemetry.NewControllerMetrics(rt.Metrics)
	if err != nil {
		return nil, fmt.Errorf("registering controller metrics: %w", err)
	}

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Backend.BaseURL,
		ServiceName: cfg.Backend.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		AuthFunc:    acl.APIKeyAuth(cfg.Backend.AnonKey),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating backend client: %w", err)
	}

	authClient := acl.NewAuthClient(httpClient, cfg.Backend.Name, cfg.Backend.AnonKey, logger)
	quoteClient := acl.NewQuoteClient(acl.QuoteClientConfig{
		Client:      httpClient,
		ServiceName: cfg.Backend.Name,
		AnonKey:     cfg.Backend.AnonKey,
		Logger:      logger,
	})

	store, err := sqlite.Open(ctx, cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	rt.closers = append(rt.closers, store.Close)

	renderer, err := share.NewRenderer(cfg.Share.OutputDir)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("creating card renderer: %w", err)
	}

	outbox, err := share.NewOutbox(cfg.Share.OutboxDir, cfg.App.Platform, logger)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("creating share outbox: %w", err)
	}

	// Deliveries land in the notice feed, which exists only once the core
	// is built.
	var notices *app.NoticeFeed

	scheduler, err := notify.New(notify.Config{
		Policy: cfg.Reminder.Permission,
		Prompt: opts.Prompt,
		Deliver: func(ctx context.Context, d ports.Delivery) {
			logging.FromContextOr(ctx, logger).InfoContext(ctx, "reminder delivered",
				slog.String("notification_id", d.ID),
				slog.Time("fired_at", d.FiredAt),
			)

			if notices != nil {
				notices.Notify(ctx, domain.NoticeInfo, d.Reminder.Title, d.Reminder.Body)
			}
		},
		Logger: logger,
	})
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("creating notification scheduler: %w", err)
	}

	rt.closers = append(rt.closers, scheduler.Close)

	rt.Core = app.NewCore(app.CoreConfig{
		Auth:          authClient,
		SessionStore:  store,
		Quotes:        quoteClient,
		Favorites:     quoteClient,
		Notifications: scheduler,
		Renderer:      renderer,
		ShareSheet:    outbox,
		Platform:      cfg.App.Platform,
		Search: app.SearchConfig{
			Debounce: cfg.Search.Debounce,
			Limit:    cfg.Search.Limit,
		},
		Reminder: ports.Reminder{
			Title:  cfg.Reminder.Title,
			Body:   cfg.Reminder.Body,
			Hour:   cfg.Reminder.Hour,
			Minute: cfg.Reminder.Minute,
			Sound:  true,
		},
		Recorder: recorder,
		Logger:   logger,
	})
	notices = rt.Core.Notices

	for _, checker := range []ports.HealthChecker{quoteClient, store} {
		if err := rt.Health.Register(checker); err != nil {
			_ = rt.Close()
			return nil, fmt.Errorf("registering health check: %w", err)
		}
	}

	return rt, nil
}

// Close settles pending work and releases the runtime's resources.
func (r *Runtime) Close() error {
	if r.Core != nil {
		r.Core.Close()
	}

	var errs []error

	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}

	r.closers = nil

	return errors.Join(errs...)
}

// Profile returns the config profile named by APP_ENVIRONMENT, or "local".
func Profile() string {
	if p := os.Getenv("APP_ENVIRONMENT"); p != "" {
		return p
	}

	return "local"
}

// LoadConfig loads and validates the configuration of profile.
func LoadConfig(profile string) (*config.Config, error) {
	cfg, err := config.Load(profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// NewLogger builds the process logger from cfg.Log and installs it as the
// default.
func NewLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	return logger
}
