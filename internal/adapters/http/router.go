package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quotevault/quotevault/internal/adapters/http/handlers"
	"github.com/quotevault/quotevault/internal/adapters/http/middleware"
	"github.com/quotevault/quotevault/internal/platform/config"
	"github.com/quotevault/quotevault/internal/platform/logging"
	"github.com/quotevault/quotevault/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds a request to the local API.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	Logger    *slog.Logger
	AppConfig *config.AppConfig

	HealthHandler  *handlers.HealthHandler
	ScreenHandler  *handlers.ScreenHandler
	SessionHandler *handlers.SessionHandler
	ActionHandler  *handlers.ActionHandler

	// Sessions binds the signed-in user to every API request's logs.
	Sessions middleware.SessionSource

	// Timeout is the deadline of an /api/v1 request. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Logger - seed the request context with the service logger
//  3. Request ID - generate/extract request ID
//  4. Correlation ID - handle distributed tracing correlation
//  5. OpenTelemetry - tracing and request metrics
//  6. Logging - request logging (skips /-/ endpoints)
//
// Route groups:
//   - /-/ (internal): health and metrics, no deadline
//   - /api/v1/: screens, session and actions, with deadline and session binding
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	name := "quotevault"
	if cfg.AppConfig != nil && cfg.AppConfig.Name != "" {
		name = cfg.AppConfig.Name
	}

	engine.Use(
		middleware.Recovery(),
		withLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(name),
		telemetry.Middleware(),
		middleware.Logging(),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.Mount(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.Sessions != nil {
		apiV1.Use(middleware.OptionalSession(cfg.Sessions))
	}

	setupAPIRoutes(apiV1, cfg)
}

// withLogger seeds each request context with logger, which the ID and
// logging middleware enrich.
func withLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if logger != nil {
			c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		}

		c.Next()
	}
}

func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.ScreenHandler != nil {
		cfg.ScreenHandler.RegisterScreenRoutes(rg)
	}

	if cfg.SessionHandler != nil {
		cfg.SessionHandler.RegisterSessionRoutes(rg)
	}

	if cfg.ActionHandler != nil {
		cfg.ActionHandler.RegisterActionRoutes(rg)
	}
}

// NewDefaultRouterConfig creates a RouterConfig for the given handlers with
// DefaultRequestTimeout.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	healthHandler *handlers.HealthHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AppConfig:     appCfg,
		HealthHandler: healthHandler,
		Timeout:       DefaultRequestTimeout,
	}
}
