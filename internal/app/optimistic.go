package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/platform/logging"
)

// ToggleOps binds a Toggle to local state and to the remote relation.
type ToggleOps[K comparable] struct {
	// Read returns the locally held value for key. ok is false when the key
	// is not on screen.
	Read func(key K) (value, ok bool)

	// Write sets the locally held value for key.
	Write func(key K, value bool)

	// Apply makes the relation true remotely.
	Apply func(ctx context.Context, key K) error

	// Undo makes the relation false remotely.
	Undo func(ctx context.Context, key K) error
}

// ToggleConfig configures a Toggle.
type ToggleConfig struct {
	// Entity names the relation in errors and logs.
	Entity string

	// Ready reports whether a toggle may start, typically whether a session
	// exists. A non-nil error rejects the toggle with LoginMessage.
	Ready func(ctx context.Context) error

	// LoginMessage is shown when Ready rejects.
	LoginMessage string

	// FailureMessage is shown when the remote call fails and the local value
	// is rolled back.
	FailureMessage string

	// Busy is the set of keys with a remote call outstanding. Toggles that
	// share one set never run two calls for the same key. A nil Busy gives
	// the Toggle a private set.
	Busy *KeySet

	Notifier Notifier
	Recorder Recorder
	Logger   *slog.Logger
}

// KeySet is a concurrency-safe set of keys, used to claim a key for the
// duration of a remote call.
type KeySet struct {
	mu   sync.Mutex
	keys map[any]struct{}
}

// NewKeySet creates an empty set.
func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[any]struct{})}
}

// Claim adds key and reports whether it was absent.
func (s *KeySet) Claim(key any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, held := s.keys[key]; held {
		return false
	}

	s.keys[key] = struct{}{}

	return true
}

// Release removes key.
func (s *KeySet) Release(key any) {
	s.mu.Lock()
	delete(s.keys, key)
	s.mu.Unlock()
}

// Holds reports whether key is claimed.
func (s *KeySet) Holds(key any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, held := s.keys[key]

	return held
}

// Toggle flips a boolean relation optimistically: the local value changes
// synchronously, the remote call runs in the background, and a failure
// restores the captured value. At most one toggle per key is in flight; a
// second one is rejected with a conflict error.
type Toggle[K comparable] struct {
	ops ToggleOps[K]
	cfg ToggleConfig

	mu sync.Mutex
	wg sync.WaitGroup
}

// NewToggle creates a Toggle.
func NewToggle[K comparable](ops ToggleOps[K], cfg ToggleConfig) *Toggle[K] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Entity == "" {
		cfg.Entity = "toggle"
	}

	if cfg.Busy == nil {
		cfg.Busy = NewKeySet()
	}

	cfg.Recorder = orNop(cfg.Recorder)

	return &Toggle[K]{ops: ops, cfg: cfg}
}

// Pending is the handle of a toggle whose remote call may still be running.
type Pending struct {
	// Value is the optimistic value written locally.
	Value bool

	done chan struct{}
	err  error
}

// Done is closed once the remote call has settled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the remote call settles and returns its error. A non-nil
// error means the local value was rolled back.
func (p *Pending) Wait() error {
	<-p.done
	return p.err
}

// Toggle flips key. The returned Pending already reflects the new local value.
func (t *Toggle[K]) Toggle(ctx context.Context, key K) (*Pending, error) {
	logger := logging.FromContextOr(ctx, t.cfg.Logger).With(
		slog.String("entity", t.cfg.Entity),
		slog.Any("key", key),
	)

	if t.cfg.Ready != nil {
		if err := t.cfg.Ready(ctx); err != nil {
			t.cfg.Recorder.ToggleOutcome(OutcomeRejected)
			t.notify(ctx, domain.NoticeInfo, "", t.cfg.LoginMessage)

			return nil, err
		}
	}

	t.mu.Lock()

	if !t.cfg.Busy.Claim(key) {
		t.mu.Unlock()
		t.cfg.Recorder.ToggleOutcome(OutcomeRejected)

		return nil, domain.NewConflictError(t.cfg.Entity, fmt.Sprintf("update of %v already in flight", key))
	}

	before, ok := t.ops.Read(key)
	if !ok {
		t.cfg.Busy.Release(key)
		t.mu.Unlock()

		return nil, domain.NewNotFoundError(t.cfg.Entity, fmt.Sprint(key))
	}

	after := !before
	t.ops.Write(key, after)
	t.wg.Add(1)
	t.mu.Unlock()

	p := &Pending{Value: after, done: make(chan struct{})}
	remote := t.ops.Apply
	if !after {
		remote = t.ops.Undo
	}

	// The remote call outlives the caller; only its result can be ignored.
	bg := context.WithoutCancel(ctx)

	go func() {
		defer t.wg.Done()
		defer close(p.done)

		err := remote(bg, key)

		t.mu.Lock()
		if err != nil {
			t.ops.Write(key, before)
		}
		t.cfg.Busy.Release(key)
		t.mu.Unlock()

		if err != nil {
			p.err = err
			t.cfg.Recorder.ToggleOutcome(OutcomeRolledBack)
			logger.WarnContext(bg, "optimistic update rolled back", slog.Bool("value", after), slog.Any("error", err))
			t.notify(bg, domain.NoticeError, "Error", t.cfg.FailureMessage)

			return
		}

		t.cfg.Recorder.ToggleOutcome(OutcomeCommitted)
		logger.DebugContext(bg, "optimistic update committed", slog.Bool("value", after))
	}()

	return p, nil
}

// InFlight reports whether a toggle of key is awaiting the remote call.
func (t *Toggle[K]) InFlight(key K) bool {
	return t.cfg.Busy.Holds(key)
}

// Wait blocks until every in-flight toggle has settled.
func (t *Toggle[K]) Wait() {
	t.wg.Wait()
}

func (t *Toggle[K]) notify(ctx context.Context, kind domain.NoticeKind, title, message string) {
	if t.cfg.Notifier == nil || message == "" {
		return
	}

	t.cfg.Notifier.Notify(ctx, kind, title, message)
}
