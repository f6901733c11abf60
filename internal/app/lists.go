package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/platform/logging"
)

// LoadState is a list screen's loading indicator.
type LoadState string

// Load states. Loading blocks the screen with a spinner; refreshing keeps the
// old data visible.
const (
	StateIdle       LoadState = "idle"
	StateLoading    LoadState = "loading"
	StateRefreshing LoadState = "refreshing"
)

// Trigger names what started a load.
type Trigger string

// Load triggers.
const (
	TriggerMount   Trigger = "mount"
	TriggerRefresh Trigger = "refresh"
	TriggerFocus   Trigger = "focus"
	TriggerQuery   Trigger = "query"
)

// ParseTrigger maps a lifecycle verb to a Trigger.
func ParseTrigger(s string) (Trigger, error) {
	switch t := Trigger(s); t {
	case TriggerMount, TriggerRefresh, TriggerFocus:
		return t, nil
	default:
		return "", domain.NewValidationError("trigger", "unknown lifecycle event "+s)
	}
}

// LoadFunc fetches a screen's data.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// ListConfig configures a List.
type ListConfig struct {
	// Screen names the list in logs and metrics.
	Screen string

	// FailureMessage is the notice shown when a load fails with an error
	// that carries no user-facing message of its own.
	FailureMessage string

	Notifier Notifier
	Recorder Recorder
	Logger   *slog.Logger
}

// Snapshot is a consistent view of a list.
type Snapshot[T any] struct {
	State  LoadState
	Data   T
	Loaded bool
}

// List owns one screen's data and its idle/loading/refreshing state.
//
// Mount moves idle → loading → idle, Refresh idle → refreshing → idle with
// the old data visible, and Focus reloads silently. A Focus before the first
// successful load behaves like Mount. Failures return to idle and keep the
// prior data. When loads overlap, only the most recently started one is
// applied.
type List[T any] struct {
	mu     sync.Mutex
	load   LoadFunc[T]
	cfg    ListConfig
	state  LoadState
	data   T
	loaded bool
	seq    uint64
}

// NewList creates an idle, unloaded list.
func NewList[T any](load LoadFunc[T], cfg ListConfig) *List[T] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.FailureMessage == "" {
		cfg.FailureMessage = "Could not load quotes. Pull to refresh."
	}

	cfg.Recorder = orNop(cfg.Recorder)

	return &List[T]{
		load:  load,
		cfg:   cfg,
		state: StateIdle,
	}
}

// Mount performs the initial blocking load.
func (l *List[T]) Mount(ctx context.Context) error {
	return l.run(ctx, TriggerMount)
}

// Refresh reloads while the current data stays visible.
func (l *List[T]) Refresh(ctx context.Context) error {
	return l.run(ctx, TriggerRefresh)
}

// Focus reloads silently when the screen becomes visible again.
func (l *List[T]) Focus(ctx context.Context) error {
	return l.run(ctx, TriggerFocus)
}

// Handle dispatches a lifecycle trigger.
func (l *List[T]) Handle(ctx context.Context, t Trigger) error {
	return l.run(ctx, t)
}

// Snapshot returns the current state and data.
func (l *List[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Snapshot[T]{State: l.state, Data: l.data, Loaded: l.loaded}
}

// Update applies a local edit to the loaded data.
func (l *List[T]) Update(fn func(T) T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.data = fn(l.data)
}

// View runs fn with the current data under the list lock.
func (l *List[T]) View(fn func(T)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fn(l.data)
}

// Reset forgets the loaded data, e.g. after sign-out.
func (l *List[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T

	l.seq++
	l.data = zero
	l.loaded = false
	l.state = StateIdle
}

func (l *List[T]) run(ctx context.Context, trigger Trigger) error {
	l.mu.Lock()

	switch {
	case !l.loaded:
		l.state = StateLoading
	case trigger == TriggerMount:
		l.state = StateLoading
	case trigger == TriggerRefresh:
		l.state = StateRefreshing
	}

	l.seq++
	seq := l.seq
	l.mu.Unlock()

	logger := logging.FromContextOr(ctx, l.cfg.Logger).With(
		slog.String("screen", l.cfg.Screen),
		slog.String("trigger", string(trigger)),
	)
	logger.DebugContext(ctx, "loading list")

	data, err := l.load(ctx)

	l.mu.Lock()
	latest := seq == l.seq
	if latest {
		l.state = StateIdle
	}

	if err == nil && latest {
		l.data = data
		l.loaded = true
	}
	l.mu.Unlock()

	switch {
	case err != nil:
		l.cfg.Recorder.LoadOutcome(l.cfg.Screen, string(trigger), OutcomeFailed)
		logger.ErrorContext(ctx, "list load failed", slog.Any("error", err))

		if l.cfg.Notifier != nil {
			l.cfg.Notifier.Notify(ctx, domain.NoticeError, "Error", domain.UserMessage(err, l.cfg.FailureMessage))
		}

		return err

	case !latest:
		l.cfg.Recorder.LoadOutcome(l.cfg.Screen, string(trigger), OutcomeStale)
		logger.DebugContext(ctx, "discarding superseded list load")

	default:
		l.cfg.Recorder.LoadOutcome(l.cfg.Screen, string(trigger), OutcomeLoaded)
	}

	return nil
}
