// Package notify is an in-process stand-in for the OS local-notification
// facility. Reminders fire from timers owned by the running process and are
// handed to a DeliverFunc.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quotevault/quotevault/internal/ports"
)

// Permission policies.
const (
	PolicyGranted = "granted"
	PolicyDenied  = "denied"
	PolicyPrompt  = "prompt"
)

// DeliverFunc receives each fired reminder.
type DeliverFunc func(ctx context.Context, d ports.Delivery)

// PromptFunc asks the user whether notifications may be shown.
type PromptFunc func(ctx context.Context) (bool, error)

// stopper is the part of *time.Timer the scheduler needs.
type stopper interface {
	Stop() bool
}

// Config configures a Scheduler.
type Config struct {
	// Policy is granted, denied or prompt. Prompt leaves the permission
	// undetermined until RequestPermission asks Prompt; without a Prompt
	// the request is granted.
	Policy string

	Prompt   PromptFunc
	Deliver  DeliverFunc
	Location *time.Location
	Logger   *slog.Logger
}

// Scheduler implements ports.NotificationService with process-local timers.
type Scheduler struct {
	prompt   PromptFunc
	deliver  DeliverFunc
	location *time.Location
	logger   *slog.Logger

	now       func() time.Time
	afterFunc func(time.Duration, func()) stopper

	mu     sync.Mutex
	status ports.Permission
	jobs   map[string]*job
}

type job struct {
	id       string
	reminder ports.Reminder
	timer    stopper
	next     time.Time
}

var _ ports.NotificationService = (*Scheduler)(nil)

// New creates a scheduler.
func New(cfg Config) (*Scheduler, error) {
	status := ports.PermissionUndetermined

	switch cfg.Policy {
	case PolicyGranted:
		status = ports.PermissionGranted
	case PolicyDenied:
		status = ports.PermissionDenied
	case PolicyPrompt, "":
	default:
		return nil, fmt.Errorf("unknown notification permission policy %q", cfg.Policy)
	}

	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Scheduler{
		prompt:   cfg.Prompt,
		deliver:  cfg.Deliver,
		location: cfg.Location,
		logger:   cfg.Logger.With(slog.String("component", "notify.Scheduler")),
		now:      time.Now,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		status: status,
		jobs:   make(map[string]*job),
	}, nil
}

// PermissionStatus implements ports.NotificationService.
func (s *Scheduler) PermissionStatus(context.Context) (ports.Permission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status, nil
}

// RequestPermission implements ports.NotificationService. A decided
// permission is returned as is; the user is asked at most once.
func (s *Scheduler) RequestPermission(ctx context.Context) (ports.Permission, error) {
	s.mu.Lock()
	status := s.status
	s.mu.Unlock()

	if status != ports.PermissionUndetermined {
		return status, nil
	}

	allowed := true

	if s.prompt != nil {
		var err error

		allowed, err = s.prompt(ctx)
		if err != nil {
			return ports.PermissionUndetermined, fmt.Errorf("prompting for notification permission: %w", err)
		}
	}

	status = ports.PermissionDenied
	if allowed {
		status = ports.PermissionGranted
	}

	s.mu.Lock()
	s.status = status
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "notification permission decided", slog.String("status", string(status)))

	return status, nil
}

// CancelAll implements ports.NotificationService.
func (s *Scheduler) CancelAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, j := range s.jobs {
		j.timer.Stop()
		delete(s.jobs, id)
	}

	s.logger.DebugContext(ctx, "cancelled scheduled reminders")

	return nil
}

// ScheduleDaily implements ports.NotificationService.
func (s *Scheduler) ScheduleDaily(ctx context.Context, r ports.Reminder) (string, error) {
	if r.Hour < 0 || r.Hour > 23 || r.Minute < 0 || r.Minute > 59 {
		return "", fmt.Errorf("invalid reminder time %02d:%02d", r.Hour, r.Minute)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != ports.PermissionGranted {
		return "", fmt.Errorf("notification permission is %s", s.status)
	}

	j := &job{id: uuid.NewString(), reminder: r}
	s.jobs[j.id] = j
	s.armLocked(context.WithoutCancel(ctx), j)

	s.logger.InfoContext(ctx, "reminder scheduled",
		slog.String("notification_id", j.id),
		slog.Time("next", j.next),
	)

	return j.id, nil
}

// Scheduled returns the next fire time of every scheduled reminder.
func (s *Scheduler) Scheduled() map[string]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]time.Time, len(s.jobs))
	for id, j := range s.jobs {
		out[id] = j.next
	}

	return out
}

// Close stops every timer.
func (s *Scheduler) Close() error {
	return s.CancelAll(context.Background())
}

func (s *Scheduler) armLocked(ctx context.Context, j *job) {
	now := s.now().In(s.location)
	j.next = NextOccurrence(now, j.reminder.Hour, j.reminder.Minute)
	j.timer = s.afterFunc(j.next.Sub(now), func() { s.fire(ctx, j.id) })
}

func (s *Scheduler) fire(ctx context.Context, id string) {
	s.mu.Lock()

	j, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		return
	}

	delivery := ports.Delivery{ID: id, Reminder: j.reminder, FiredAt: s.now()}
	s.armLocked(ctx, j)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "reminder fired",
		slog.String("notification_id", id),
		slog.String("title", delivery.Reminder.Title),
	)

	if s.deliver != nil {
		s.deliver(ctx, delivery)
	}
}

// NextOccurrence returns the first hour:minute strictly after now, in now's
// location.
func NextOccurrence(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, minute, 0, 0, now.Location())
	}

	return next
}
