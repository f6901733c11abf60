package app

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/ports"
)

// Favorite notices.
const (
	MsgLoginToSave    = "Please login to save quotes"
	MsgToggleFailed   = "Failed to update favorite. Check connection."
	MsgRemoveFailed   = "Failed to remove favorite. Please check your internet."
	msgFeedLoadFailed = "Could not load quotes. Pull to refresh."
)

// ScreenDeps are the collaborators shared by the list screens.
type ScreenDeps struct {
	Quotes    ports.QuoteStore
	Favorites ports.FavoriteStore
	Sessions  SessionSource
	Notifier  Notifier
	Recorder  Recorder
	Logger    *slog.Logger

	// Busy holds the quote IDs with a favorite write outstanding on any
	// screen.
	Busy *KeySet
}

func (d ScreenDeps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}

	return d.Logger
}

func (d ScreenDeps) listConfig(screen string) ListConfig {
	return ListConfig{
		Screen:         screen,
		FailureMessage: msgFeedLoadFailed,
		Notifier:       d.Notifier,
		Recorder:       d.Recorder,
		Logger:         d.logger(),
	}
}

// requireSession returns the current session or an unauthenticated error.
func (d ScreenDeps) requireSession(ctx context.Context) (*domain.Session, error) {
	s, err := d.Sessions.Current(ctx)
	if err != nil {
		return nil, err
	}

	if s == nil {
		return nil, domain.NewUnauthenticatedError("")
	}

	return s, nil
}

// favoriteIDs returns the viewer's favorite IDs, or none when signed out.
// A failure degrades to no favorites; the quotes are still shown.
func (d ScreenDeps) favoriteIDs(session *domain.Session) func(context.Context) (map[string]struct{}, error) {
	return func(ctx context.Context) (map[string]struct{}, error) {
		if session == nil {
			return map[string]struct{}{}, nil
		}

		ids, err := d.Favorites.FavoriteIDs(ctx, session)
		if err != nil {
			d.logger().WarnContext(ctx, "loading favorite ids", slog.Any("error", err))
			return map[string]struct{}{}, nil
		}

		return ids, nil
	}
}

// newFavoriteToggle binds a Toggle to the favorites relation of the signed-in
// user. read and write address the screen's local copy.
func newFavoriteToggle(
	d ScreenDeps,
	read func(string) (bool, bool),
	write func(string, bool),
	failure string,
) *Toggle[string] {
	return NewToggle(ToggleOps[string]{
		Read:  read,
		Write: write,
		Apply: func(ctx context.Context, quoteID string) error {
			s, err := d.requireSession(ctx)
			if err != nil {
				return err
			}

			return d.Favorites.AddFavorite(ctx, s, quoteID)
		},
		Undo: func(ctx context.Context, quoteID string) error {
			s, err := d.requireSession(ctx)
			if err != nil {
				return err
			}

			return d.Favorites.RemoveFavorite(ctx, s, quoteID)
		},
	}, ToggleConfig{
		Entity: "favorite",
		Ready: func(ctx context.Context) error {
			_, err := d.requireSession(ctx)
			return err
		},
		LoginMessage:   MsgLoginToSave,
		FailureMessage: failure,
		Busy:           d.Busy,
		Notifier:       d.Notifier,
		Recorder:       d.Recorder,
		Logger:         d.logger(),
	})
}

// setFavorite returns a copy of quotes with IsFavorite set on id. The input
// slice is never modified; snapshots may still hold it.
func setFavorite(quotes []domain.Quote, id string, value bool) []domain.Quote {
	out := slices.Clone(quotes)
	for i := range out {
		if out[i].ID == id {
			out[i].IsFavorite = value
		}
	}

	return out
}

func findFavorite(quotes []domain.Quote, id string) (bool, bool) {
	for _, q := range quotes {
		if q.ID == id {
			return q.IsFavorite, true
		}
	}

	return false, false
}

// FavoritesScreen lists the signed-in user's favorites. Removing a row is
// optimistic: the row disappears at once and returns to the same position
// when the remote delete fails.
type FavoritesScreen struct {
	*List[[]domain.Quote]

	deps    ScreenDeps
	remover *Toggle[string]

	mu      sync.Mutex
	removed map[string]removal
}

type removal struct {
	index int
	quote domain.Quote
}

// NewFavoritesScreen creates the favorites screen.
func NewFavoritesScreen(deps ScreenDeps) *FavoritesScreen {
	s := &FavoritesScreen{
		deps:    deps,
		removed: make(map[string]removal),
	}

	s.List = NewList(s.load, deps.listConfig("favorites"))
	s.remover = newFavoriteToggle(deps, s.present, s.write, MsgRemoveFailed)

	return s
}

// Remove un-favorites quoteID.
func (s *FavoritesScreen) Remove(ctx context.Context, quoteID string) (*Pending, error) {
	return s.remover.Toggle(ctx, quoteID)
}

// Settle blocks until pending removals have finished.
func (s *FavoritesScreen) Settle() {
	s.remover.Wait()
}

func (s *FavoritesScreen) load(ctx context.Context) ([]domain.Quote, error) {
	session, err := s.deps.Sessions.Current(ctx)
	if err != nil {
		return nil, err
	}

	if session == nil {
		return []domain.Quote{}, nil
	}

	return s.deps.Favorites.ListFavorites(ctx, session)
}

func (s *FavoritesScreen) present(id string) (bool, bool) {
	var found bool

	s.View(func(quotes []domain.Quote) {
		found = slices.ContainsFunc(quotes, func(q domain.Quote) bool { return q.ID == id })
	})

	return found, found
}

func (s *FavoritesScreen) write(id string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !value {
		s.Update(func(quotes []domain.Quote) []domain.Quote {
			i := slices.IndexFunc(quotes, func(q domain.Quote) bool { return q.ID == id })
			if i < 0 {
				return quotes
			}

			s.removed[id] = removal{index: i, quote: quotes[i]}

			return slices.Delete(slices.Clone(quotes), i, i+1)
		})

		return
	}

	r, ok := s.removed[id]
	if !ok {
		return
	}

	delete(s.removed, id)

	s.Update(func(quotes []domain.Quote) []domain.Quote {
		at := min(r.index, len(quotes))
		return slices.Insert(slices.Clone(quotes), at, r.quote)
	})
}

// Find returns the favorited quote with id if the screen shows it.
func (s *FavoritesScreen) Find(id string) (domain.Quote, bool) {
	var (
		q  domain.Quote
		ok bool
	)

	s.View(func(quotes []domain.Quote) {
		q, ok = findQuote(quotes, id)
	})

	return q, ok
}

func findQuote(quotes []domain.Quote, id string) (domain.Quote, bool) {
	for _, q := range quotes {
		if q.ID == id {
			return q, true
		}
	}

	return domain.Quote{}, false
}
