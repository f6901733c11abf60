package app

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelayer_RunsAfterWindow(t *testing.T) {
	d := NewDelayer(20 * time.Millisecond)

	fired := make(chan time.Time, 1)
	start := time.Now()

	replaced := d.Schedule(func() { fired <- time.Now() })

	assert.False(t, replaced)
	assert.True(t, d.Pending())

	select {
	case at := <-fired:
		assert.GreaterOrEqual(t, at.Sub(start), 20*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("scheduled function never ran")
	}

	assert.Eventually(t, func() bool { return !d.Pending() }, time.Second, 5*time.Millisecond)
}

func TestDelayer_ScheduleReplacesPendingRun(t *testing.T) {
	d := NewDelayer(30 * time.Millisecond)

	var first, second atomic.Int32

	assert.False(t, d.Schedule(func() { first.Add(1) }))
	assert.True(t, d.Schedule(func() { second.Add(1) }))

	assert.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestDelayer_Cancel(t *testing.T) {
	d := NewDelayer(20 * time.Millisecond)

	var runs atomic.Int32

	assert.False(t, d.Cancel(), "nothing pending yet")

	d.Schedule(func() { runs.Add(1) })

	assert.True(t, d.Cancel())
	assert.False(t, d.Pending())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}

func TestDelayer_Window(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, NewDelayer(500*time.Millisecond).Window())
}
