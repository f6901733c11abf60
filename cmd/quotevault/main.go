// Package main runs the QuoteVault core behind its local JSON API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/quotevault/quotevault/internal/adapters/http"
	"github.com/quotevault/quotevault/internal/adapters/http/handlers"
	"github.com/quotevault/quotevault/internal/bootstrap"
	"github.com/quotevault/quotevault/internal/platform/telemetry"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := bootstrap.LoadConfig(bootstrap.Profile())
	if err != nil {
		return err
	}

	logger := bootstrap.NewLogger(cfg)

	logger.Info("starting quotevault",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("platform", cfg.App.Platform),
	)

	// Noop providers when telemetry is disabled.
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		Platform:     cfg.App.Platform,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	rt, err := bootstrap.New(ctx, bootstrap.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := rt.Close(); closeErr != nil {
			logger.Error("closing runtime", slog.Any("error", closeErr))
		}
	}()

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:         logger,
		AppConfig:      &cfg.App,
		HealthHandler:  handlers.NewHealthHandler(rt.Health, buildInfo, rt.Metrics),
		ScreenHandler:  handlers.NewScreenHandler(rt.Core),
		SessionHandler: handlers.NewSessionHandler(rt.Core),
		ActionHandler:  handlers.NewActionHandler(rt.Core),
		Sessions:       rt.Core.Sessions,
		Timeout:        http.DefaultRequestTimeout,
	})

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(sigCtx); err != nil {
		return err
	}

	logger.Info("shutdown complete")

	return nil
}
