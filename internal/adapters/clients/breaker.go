package clients

import (
	"fmt"
	"sync"
	"time"

	"github.com/quotevault/quotevault/internal/platform/config"
)

// State is the position of the backend breaker.
type State uint8

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen rejects requests until the cool-down passes.
	StateOpen

	// StateHalfOpen admits a bounded number of probe requests.
	StateHalfOpen
)

var stateNames = [...]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}

	return "unknown"
}

// BreakerSnapshot is a point-in-time view of the breaker, reported by
// readiness checks.
type BreakerSnapshot struct {
	State    State
	Failures int

	// RetryAt is when an open breaker admits its first probe. Zero unless
	// State is StateOpen.
	RetryAt time.Time
}

// transition is a state change observed under the lock and reported after it
// is released.
type transition struct {
	from, to State
}

// breaker trips after MaxFailures consecutive failed backend calls. Once
// Timeout has elapsed it admits up to HalfOpenLimit probes; that many
// successes close it again and any failure reopens it.
type breaker struct {
	mu     sync.Mutex
	limits config.CircuitBreakerConfig
	now    func() time.Time
	notify func(from, to State)

	state     State
	failures  int
	probes    int
	recovered int
	trippedAt time.Time
}

func newBreaker(limits config.CircuitBreakerConfig, notify func(from, to State)) *breaker {
	if limits.MaxFailures < 1 {
		limits.MaxFailures = 1
	}

	if limits.HalfOpenLimit < 1 {
		limits.HalfOpenLimit = 1
	}

	return &breaker{limits: limits, now: time.Now, notify: notify}
}

// admit returns ErrCircuitOpen when the call must not reach the backend.
func (b *breaker) admit() error {
	b.mu.Lock()

	var moved *transition

	switch b.state {
	case StateOpen:
		retryAt := b.trippedAt.Add(b.limits.Timeout)
		if b.now().Before(retryAt) {
			b.mu.Unlock()
			return fmt.Errorf("%w until %s", ErrCircuitOpen, retryAt.Format(time.TimeOnly))
		}

		moved = b.moveLocked(StateHalfOpen)
		b.probes = 1

	case StateHalfOpen:
		if b.probes >= b.limits.HalfOpenLimit {
			b.mu.Unlock()
			return fmt.Errorf("%w: probe in flight", ErrCircuitOpen)
		}

		b.probes++

	case StateClosed:
	}

	b.mu.Unlock()
	b.report(moved)

	return nil
}

// record feeds the outcome of an admitted call back into the breaker.
func (b *breaker) record(ok bool) {
	b.mu.Lock()

	var moved *transition

	switch b.state {
	case StateClosed:
		if ok {
			b.failures = 0
			break
		}

		b.failures++
		if b.failures >= b.limits.MaxFailures {
			moved = b.moveLocked(StateOpen)
		}

	case StateHalfOpen:
		if !ok {
			moved = b.moveLocked(StateOpen)
			break
		}

		b.recovered++
		if b.recovered >= b.limits.HalfOpenLimit {
			moved = b.moveLocked(StateClosed)
		}

	case StateOpen:
	}

	b.mu.Unlock()
	b.report(moved)
}

func (b *breaker) snapshot() BreakerSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := BreakerSnapshot{State: b.state, Failures: b.failures}
	if b.state == StateOpen {
		snap.RetryAt = b.trippedAt.Add(b.limits.Timeout)
	}

	return snap
}

// moveLocked switches state and resets the counters of the new state.
func (b *breaker) moveLocked(to State) *transition {
	from := b.state
	b.state = to
	b.probes = 0
	b.recovered = 0

	switch to {
	case StateOpen:
		b.trippedAt = b.now()
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
	}

	return &transition{from: from, to: to}
}

func (b *breaker) report(t *transition) {
	if t != nil && b.notify != nil {
		b.notify(t.from, t.to)
	}
}
