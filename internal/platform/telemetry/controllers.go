package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ControllerMetrics counts outcomes of the screen controllers. It satisfies
// app.Recorder.
type ControllerMetrics struct {
	queries *prometheus.CounterVec
	toggles *prometheus.CounterVec
	loads   *prometheus.CounterVec
	notices *prometheus.CounterVec
}

// NewControllerMetrics registers the controller collectors with reg.
func NewControllerMetrics(reg prometheus.Registerer) (*ControllerMetrics, error) {
	m := &ControllerMetrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotevault",
			Name:      "search_queries_total",
			Help:      "Search queries by outcome (applied, stale, failed).",
		}, []string{"outcome"}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotevault",
			Name:      "favorite_toggles_total",
			Help:      "Optimistic favorite toggles by outcome (committed, rolled_back, rejected).",
		}, []string{"outcome"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotevault",
			Name:      "list_loads_total",
			Help:      "List loads by screen, trigger and outcome.",
		}, []string{"screen", "trigger", "outcome"}),
		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotevault",
			Name:      "notices_total",
			Help:      "User-facing notices by kind.",
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{m.queries, m.toggles, m.loads, m.notices} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// QueryOutcome counts one search query outcome.
func (m *ControllerMetrics) QueryOutcome(outcome string) {
	m.queries.WithLabelValues(outcome).Inc()
}

// ToggleOutcome counts one optimistic toggle outcome.
func (m *ControllerMetrics) ToggleOutcome(outcome string) {
	m.toggles.WithLabelValues(outcome).Inc()
}

// LoadOutcome counts one list load.
func (m *ControllerMetrics) LoadOutcome(screen, trigger, outcome string) {
	m.loads.WithLabelValues(screen, trigger, outcome).Inc()
}

// NoticeEmitted counts one notice.
func (m *ControllerMetrics) NoticeEmitted(kind string) {
	m.notices.WithLabelValues(kind).Inc()
}
