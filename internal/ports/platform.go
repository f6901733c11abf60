package ports

import (
	"context"
	"time"

	"github.com/quotevault/quotevault/internal/domain"
)

// Permission is the OS notification permission state.
type Permission string

// Permission states.
const (
	PermissionUndetermined Permission = "undetermined"
	PermissionGranted      Permission = "granted"
	PermissionDenied       Permission = "denied"
)

// Reminder is a repeating local notification.
type Reminder struct {
	Title  string
	Body   string
	Hour   int
	Minute int
	Sound  bool
}

// Delivery is one fired reminder.
type Delivery struct {
	ID       string
	Reminder Reminder
	FiredAt  time.Time
}

// NotificationService is the OS local-notification facility.
type NotificationService interface {
	// PermissionStatus reports the current permission without prompting.
	PermissionStatus(ctx context.Context) (Permission, error)

	// RequestPermission prompts for permission and returns the outcome.
	RequestPermission(ctx context.Context) (Permission, error)

	// CancelAll removes every scheduled notification.
	CancelAll(ctx context.Context) error

	// ScheduleDaily schedules r to repeat every day at r.Hour:r.Minute local time.
	ScheduleDaily(ctx context.Context, r Reminder) (string, error)
}

// CardRenderer captures a quote card region as an image file.
type CardRenderer interface {
	// Render writes the card image and returns its path.
	Render(ctx context.Context, q domain.Quote) (string, error)
}

// ShareSheet hands a file to the platform's native share UI.
type ShareSheet interface {
	// Share presents the file at path. Returns domain.ErrUnsupported where
	// the platform has no share sheet.
	Share(ctx context.Context, path string) error
}
