// Package app holds the client core: the screen controllers, the session
// manager and the services behind the reminder and share actions. It depends
// on port interfaces only; adapters are wired in cmd.
package app

import (
	"context"
	"log/slog"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/ports"
)

// CoreConfig holds the core's dependencies and settings.
type CoreConfig struct {
	Auth          ports.AuthProvider
	SessionStore  ports.SessionStore
	Quotes        ports.QuoteStore
	Favorites     ports.FavoriteStore
	Notifications ports.NotificationService
	Renderer      ports.CardRenderer
	ShareSheet    ports.ShareSheet

	// Platform is the running platform (ios, android, web, desktop).
	Platform string

	Search         SearchConfig
	Reminder       ports.Reminder
	NoticeCapacity int

	Recorder Recorder
	Logger   *slog.Logger
}

// Core is the client core: every screen and service wired to shared
// session and notice state.
type Core struct {
	Notices   *NoticeFeed
	Sessions  *SessionManager
	Feed      *FeedScreen
	Search    *SearchScreen
	Favorites *FavoritesScreen
	Reminders *ReminderService
	Sharing   *ShareService
}

// NewCore wires the core.
func NewCore(cfg CoreConfig) *Core {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	notices := NewNoticeFeed(cfg.NoticeCapacity, cfg.Recorder)

	sessions := NewSessionManager(SessionManagerConfig{
		Auth:     cfg.Auth,
		Store:    cfg.SessionStore,
		Notifier: notices,
		Logger:   logger,
	})

	deps := ScreenDeps{
		Quotes:    cfg.Quotes,
		Favorites: cfg.Favorites,
		Sessions:  sessions,
		Notifier:  notices,
		Recorder:  cfg.Recorder,
		Logger:    logger,
		Busy:      NewKeySet(),
	}

	return &Core{
		Notices:   notices,
		Sessions:  sessions,
		Feed:      NewFeedScreen(deps),
		Search:    NewSearchScreen(deps, cfg.Search),
		Favorites: NewFavoritesScreen(deps),
		Reminders: NewReminderService(cfg.Notifications, notices, cfg.Reminder, logger),
		Sharing:   NewShareService(cfg.Renderer, cfg.ShareSheet, cfg.Platform, notices, logger),
	}
}

// FindQuote returns a quote currently shown on any screen.
func (c *Core) FindQuote(id string) (domain.Quote, error) {
	for _, find := range []func(string) (domain.Quote, bool){c.Feed.Find, c.Search.Find, c.Favorites.Find} {
		if q, ok := find(id); ok {
			return q, nil
		}
	}

	return domain.Quote{}, domain.NewNotFoundError("quote", id)
}

// ShareQuote shares the card of a quote shown on any screen.
func (c *Core) ShareQuote(ctx context.Context, id string) (string, error) {
	q, err := c.FindQuote(id)
	if err != nil {
		return "", err
	}

	return c.Sharing.ShareQuote(ctx, q)
}

// SignOut signs out and forgets the signed-in user's favorites.
func (c *Core) SignOut(ctx context.Context) error {
	if err := c.Sessions.SignOut(ctx); err != nil {
		return err
	}

	c.Favorites.Reset()

	return nil
}

// Close unmounts the search screen and waits for pending work.
func (c *Core) Close() {
	c.Search.Unmount()
	c.Search.Settle()
	c.Feed.Settle()
	c.Favorites.Settle()
}
