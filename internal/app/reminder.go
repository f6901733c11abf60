package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/ports"
)

// MsgPermissionDenied is shown when notification permission is refused.
const MsgPermissionDenied = "Failed to get push token for push notification!"

// DailyQuoteReminder is the default daily reminder.
var DailyQuoteReminder = ports.Reminder{
	Title:  "☀️ Quote of the Day",
	Body:   "Tap to see today's inspiration!",
	Hour:   9,
	Minute: 0,
	Sound:  true,
}

// ReminderService schedules the daily quote reminder.
type ReminderService struct {
	notifications ports.NotificationService
	notifier      Notifier
	reminder      ports.Reminder
	logger        *slog.Logger
}

// NewReminderService creates a reminder service. A zero reminder means
// DailyQuoteReminder.
func NewReminderService(
	notifications ports.NotificationService,
	notifier Notifier,
	reminder ports.Reminder,
	logger *slog.Logger,
) *ReminderService {
	if reminder == (ports.Reminder{}) {
		reminder = DailyQuoteReminder
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ReminderService{
		notifications: notifications,
		notifier:      notifier,
		reminder:      reminder,
		logger:        logger.With(slog.String("component", "app.ReminderService")),
	}
}

// ScheduleDailyQuote makes sure exactly one daily reminder is scheduled.
// It asks for permission when not yet granted and returns false, scheduling
// nothing, when permission is refused.
func (s *ReminderService) ScheduleDailyQuote(ctx context.Context) (bool, error) {
	status, err := s.notifications.PermissionStatus(ctx)
	if err != nil {
		return false, fmt.Errorf("reading notification permission: %w", err)
	}

	if status != ports.PermissionGranted {
		status, err = s.notifications.RequestPermission(ctx)
		if err != nil {
			return false, fmt.Errorf("requesting notification permission: %w", err)
		}
	}

	if status != ports.PermissionGranted {
		s.logger.InfoContext(ctx, "notification permission not granted", slog.String("status", string(status)))

		if s.notifier != nil {
			s.notifier.Notify(ctx, domain.NoticeError, "", MsgPermissionDenied)
		}

		return false, nil
	}

	if err := s.notifications.CancelAll(ctx); err != nil {
		return false, fmt.Errorf("cancelling scheduled notifications: %w", err)
	}

	id, err := s.notifications.ScheduleDaily(ctx, s.reminder)
	if err != nil {
		return false, fmt.Errorf("scheduling daily reminder: %w", err)
	}

	s.logger.InfoContext(ctx, "daily reminder scheduled",
		slog.String("notification_id", id),
		slog.Int("hour", s.reminder.Hour),
		slog.Int("minute", s.reminder.Minute),
	)

	return true, nil
}
