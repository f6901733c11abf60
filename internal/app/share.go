package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/ports"
)

// Share notices.
const (
	MsgShareUnsupported = "Not supported on web"
	MsgShareFailed      = "Could not share image."
)

// PlatformWeb has no native share sheet.
const PlatformWeb = "web"

// ShareService renders a quote card and hands it to the share sheet.
type ShareService struct {
	renderer ports.CardRenderer
	sheet    ports.ShareSheet
	platform string
	notifier Notifier
	logger   *slog.Logger
}

// NewShareService creates a share service for the given platform.
func NewShareService(
	renderer ports.CardRenderer,
	sheet ports.ShareSheet,
	platform string,
	notifier Notifier,
	logger *slog.Logger,
) *ShareService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ShareService{
		renderer: renderer,
		sheet:    sheet,
		platform: strings.ToLower(platform),
		notifier: notifier,
		logger:   logger.With(slog.String("component", "app.ShareService")),
	}
}

// ShareQuote renders q's card and shares it. Returns the image path.
// On the web platform nothing is rendered and the error is
// domain.ErrUnsupported.
func (s *ShareService) ShareQuote(ctx context.Context, q domain.Quote) (string, error) {
	if s.platform == PlatformWeb {
		s.notify(ctx, "", MsgShareUnsupported)
		return "", domain.NewUnsupportedError("share", s.platform)
	}

	path, err := s.renderer.Render(ctx, q)
	if err != nil {
		s.logger.ErrorContext(ctx, "snapshot failed", slog.String("quote_id", q.ID), slog.Any("error", err))
		s.notify(ctx, "Error", MsgShareFailed)

		return "", err
	}

	if err := s.sheet.Share(ctx, path); err != nil {
		s.logger.ErrorContext(ctx, "share failed", slog.String("path", path), slog.Any("error", err))

		if domain.IsUnsupported(err) {
			s.notify(ctx, "", MsgShareUnsupported)
		} else {
			s.notify(ctx, "Error", MsgShareFailed)
		}

		return "", err
	}

	s.logger.InfoContext(ctx, "quote shared", slog.String("quote_id", q.ID), slog.String("path", path))

	return path, nil
}

func (s *ShareService) notify(ctx context.Context, title, message string) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, domain.NoticeError, title, message)
	}
}
