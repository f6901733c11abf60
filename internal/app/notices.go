package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/platform/logging"
)

// DefaultNoticeCapacity bounds the notice feed when no capacity is given.
const DefaultNoticeCapacity = 50

// Notifier publishes user-facing notices.
type Notifier interface {
	Notify(ctx context.Context, kind domain.NoticeKind, title, message string)
}

// NoticeFeed is a bounded in-memory notice queue. Controllers publish; the
// shell drains. When full, the oldest notice is dropped.
type NoticeFeed struct {
	mu       sync.Mutex
	items    []domain.Notice
	capacity int
	nextID   uint64
	recorder Recorder
	now      func() time.Time
}

var _ Notifier = (*NoticeFeed)(nil)

// NewNoticeFeed creates a feed holding at most capacity notices.
func NewNoticeFeed(capacity int, recorder Recorder) *NoticeFeed {
	if capacity <= 0 {
		capacity = DefaultNoticeCapacity
	}

	return &NoticeFeed{
		capacity: capacity,
		recorder: orNop(recorder),
		now:      time.Now,
	}
}

// Notify appends a notice and logs it with the context logger.
func (f *NoticeFeed) Notify(ctx context.Context, kind domain.NoticeKind, title, message string) {
	f.mu.Lock()
	f.nextID++
	n := domain.Notice{ID: f.nextID, Kind: kind, Title: title, Message: message, At: f.now()}

	if len(f.items) == f.capacity {
		f.items = f.items[1:]
	}

	f.items = append(f.items, n)
	f.mu.Unlock()

	f.recorder.NoticeEmitted(string(kind))

	level := slog.LevelInfo
	if kind == domain.NoticeError {
		level = slog.LevelWarn
	}

	logging.FromContext(ctx).Log(ctx, level, "notice",
		slog.String("kind", string(kind)),
		slog.String("title", title),
		slog.String("message", message),
	)
}

// Drain returns the pending notices, oldest first, and empties the feed.
func (f *NoticeFeed) Drain() []domain.Notice {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.items
	f.items = nil

	if out == nil {
		return []domain.Notice{}
	}

	return out
}

// Pending returns a copy of the queued notices without removing them.
func (f *NoticeFeed) Pending() []domain.Notice {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]domain.Notice{}, f.items...)
}
