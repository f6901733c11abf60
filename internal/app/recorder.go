package app

// Outcome labels reported to a Recorder.
const (
	OutcomeApplied    = "applied"
	OutcomeStale      = "stale"
	OutcomeFailed     = "failed"
	OutcomeCommitted  = "committed"
	OutcomeRolledBack = "rolled_back"
	OutcomeRejected   = "rejected"
	OutcomeLoaded     = "loaded"
)

// Recorder counts controller outcomes. telemetry.ControllerMetrics
// implements it with Prometheus counters.
type Recorder interface {
	QueryOutcome(outcome string)
	ToggleOutcome(outcome string)
	LoadOutcome(screen, trigger, outcome string)
	NoticeEmitted(kind string)
}

type nopRecorder struct{}

func (nopRecorder) QueryOutcome(string) {}
func (nopRecorder) ToggleOutcome(string) {}
func (nopRecorder) LoadOutcome(string, string, string) {}
func (nopRecorder) NoticeEmitted(string) {}

func orNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}

	return r
}
