package app

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/quotevault/quotevault/internal/domain"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testSession = &domain.Session{
	User:         domain.User{ID: "user-1", Email: "ada@example.com"},
	AccessToken:  "access-token",
	RefreshToken: "refresh-token",
}

// staticSessions is a SessionSource that always yields the same session.
type staticSessions struct {
	session *domain.Session
	err     error
}

func (s staticSessions) Current(context.Context) (*domain.Session, error) {
	return s.session, s.err
}

// recorderSpy counts outcomes by "kind:outcome" key.
type recorderSpy struct {
	mu     sync.Mutex
	counts map[string]int
}

func newRecorderSpy() *recorderSpy {
	return &recorderSpy{counts: make(map[string]int)}
}

func (r *recorderSpy) inc(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[key]++
}

func (r *recorderSpy) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.counts[key]
}

func (r *recorderSpy) QueryOutcome(outcome string)  { r.inc("query:" + outcome) }
func (r *recorderSpy) ToggleOutcome(outcome string) { r.inc("toggle:" + outcome) }
func (r *recorderSpy) NoticeEmitted(kind string)    { r.inc("notice:" + kind) }

func (r *recorderSpy) LoadOutcome(screen, _, outcome string) {
	r.inc("load:" + screen + ":" + outcome)
}

func quote(id string, category domain.Category) domain.Quote {
	return domain.Quote{
		ID:       id,
		Content:  "content of " + id,
		Author:   "author of " + id,
		Category: category,
	}
}

func ids(quotes []domain.Quote) []string {
	out := make([]string, len(quotes))
	for i, q := range quotes {
		out[i] = q.ID
	}

	return out
}

func messages(notices []domain.Notice) []string {
	out := make([]string, len(notices))
	for i, n := range notices {
		out[i] = n.Message
	}

	return out
}
