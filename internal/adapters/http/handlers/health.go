// Package handlers holds the gin handlers of the local API: the screen
// controllers, the session, one-shot actions and the /-/ probes.
package handlers

import (
	"net/http"
	"runtime"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quotevault/quotevault/internal/ports"
)

// BuildInfo is the version stamp injected with -ldflags.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{Version: version, Commit: commit, BuildTime: buildTime, GoVersion: runtime.Version()}
}

// HealthHandler serves the /-/ probes. Readiness asks the backend gateway
// and the session store; liveness asks nothing.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
	gatherer  prometheus.Gatherer
	started   time.Time
}

// NewHealthHandler creates the probe handler. A nil gatherer serves the
// default Prometheus registry.
func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo, gatherer prometheus.Gatherer) *HealthHandler {
	return &HealthHandler{registry: registry, buildInfo: buildInfo, gatherer: gatherer, started: time.Now()}
}

type livenessResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{
		Status: "ok",
		Uptime: time.Since(h.started).Truncate(time.Second).String(),
	})
}

type readinessResponse struct {
	Status  string                        `json:"status"`
	Failing []string                      `json:"failing,omitempty"`
	Checks  map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Readiness answers 503 when any component is down and names it in
// "failing".
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	resp := readinessResponse{Status: string(result.Status), Checks: result.Checks}
	for name, check := range result.Checks {
		if check.Status == ports.HealthStatusUnhealthy {
			resp.Failing = append(resp.Failing, name)
		}
	}

	slices.Sort(resp.Failing)

	code := http.StatusOK
	if result.Status == ports.HealthStatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, resp)
}

func (h *HealthHandler) BuildInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// MetricsHandler exposes gatherer, which holds the controller outcome
// counters.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		return promhttp.Handler()
	}

	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Mount registers live, ready, build and metrics under /-/.
func (h *HealthHandler) Mount(engine *gin.Engine) {
	probes := engine.Group("/-")
	probes.GET("/live", h.Liveness)
	probes.GET("/ready", h.Readiness)
	probes.GET("/build", h.BuildInfoHandler)
	probes.GET("/metrics", gin.WrapH(MetricsHandler(h.gatherer)))
}
