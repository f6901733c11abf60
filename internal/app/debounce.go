package app

import (
	"sync"
	"time"
)

// Delayer is a cancellable delay: Schedule arms a timer that runs fn after
// the quiescence window, replacing any pending run. Only the most recently
// scheduled fn can fire.
type Delayer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
	gen    uint64
}

// NewDelayer creates a Delayer with the given quiescence window. A zero
// window still defers fn to the timer goroutine.
func NewDelayer(window time.Duration) *Delayer {
	return &Delayer{window: window}
}

// Window returns the quiescence window.
func (d *Delayer) Window() time.Duration {
	return d.window
}

// Schedule cancels any pending run and arms a new one. Reports whether a
// pending run was cancelled.
func (d *Delayer) Schedule(fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	replaced := d.timer != nil
	d.stopLocked()

	d.gen++
	gen := d.gen

	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		// A Stop that lost the race with the timer firing leaves gen bumped.
		if gen != d.gen {
			d.mu.Unlock()
			return
		}

		d.timer = nil
		d.mu.Unlock()

		fn()
	})

	return replaced
}

// Cancel stops the pending run, if any. Reports whether one was pending.
func (d *Delayer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	pending := d.timer != nil
	d.stopLocked()

	return pending
}

// Pending reports whether a run is armed.
func (d *Delayer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.timer != nil
}

func (d *Delayer) stopLocked() {
	if d.timer == nil {
		return
	}

	d.timer.Stop()
	d.timer = nil
	d.gen++
}
