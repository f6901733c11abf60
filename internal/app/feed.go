package app

import (
	"context"
	"log/slog"

	"github.com/quotevault/quotevault/internal/domain"
)

// Feed is the home screen's data: the quote of the day and a random
// selection, both annotated with the viewer's favorites.
type Feed struct {
	Daily  *domain.Quote
	Quotes []domain.Quote
}

// FeedScreen is the home screen.
type FeedScreen struct {
	*List[Feed]

	deps      ScreenDeps
	favorites *Toggle[string]
}

// NewFeedScreen creates the home screen.
func NewFeedScreen(deps ScreenDeps) *FeedScreen {
	s := &FeedScreen{deps: deps}

	s.List = NewList(s.load, deps.listConfig("feed"))
	s.favorites = newFavoriteToggle(deps, s.isFavorite, s.setFavorite, MsgToggleFailed)

	return s
}

// ToggleFavorite flips the favorite state of a quote shown on the feed.
func (s *FeedScreen) ToggleFavorite(ctx context.Context, quoteID string) (*Pending, error) {
	return s.favorites.Toggle(ctx, quoteID)
}

// Settle blocks until pending toggles have finished.
func (s *FeedScreen) Settle() {
	s.favorites.Wait()
}

func (s *FeedScreen) load(ctx context.Context) (Feed, error) {
	session, err := s.deps.Sessions.Current(ctx)
	if err != nil {
		return Feed{}, err
	}

	daily, quotes, ids, err := Parallel3(ctx,
		s.daily(session),
		func(ctx context.Context) ([]domain.Quote, error) {
			return s.deps.Quotes.Random(ctx, session)
		},
		s.deps.favoriteIDs(session),
	)
	if err != nil {
		return Feed{}, err
	}

	feed := Feed{Quotes: domain.MarkFavorites(quotes, ids)}
	if daily != nil {
		d := *daily
		_, d.IsFavorite = ids[d.ID]
		feed.Daily = &d
	}

	return feed, nil
}

// daily returns the newest quote. The feed still loads without it.
func (s *FeedScreen) daily(session *domain.Session) func(context.Context) (*domain.Quote, error) {
	return func(ctx context.Context) (*domain.Quote, error) {
		q, err := s.deps.Quotes.Latest(ctx, session)
		if err != nil {
			s.deps.logger().WarnContext(ctx, "loading quote of the day", slog.Any("error", err))
			return nil, nil
		}

		return q, nil
	}
}

func (s *FeedScreen) isFavorite(id string) (bool, bool) {
	var value, ok bool

	s.View(func(f Feed) {
		value, ok = findFavorite(f.Quotes, id)
		if !ok && f.Daily != nil && f.Daily.ID == id {
			value, ok = f.Daily.IsFavorite, true
		}
	})

	return value, ok
}

func (s *FeedScreen) setFavorite(id string, value bool) {
	s.Update(func(f Feed) Feed {
		out := Feed{Quotes: setFavorite(f.Quotes, id, value), Daily: f.Daily}
		if f.Daily != nil && f.Daily.ID == id {
			d := *f.Daily
			d.IsFavorite = value
			out.Daily = &d
		}

		return out
	})
}

// Find returns the quote with id if the feed shows it.
func (s *FeedScreen) Find(id string) (domain.Quote, bool) {
	var (
		q  domain.Quote
		ok bool
	)

	s.View(func(f Feed) {
		if f.Daily != nil && f.Daily.ID == id {
			q, ok = *f.Daily, true
			return
		}

		q, ok = findQuote(f.Quotes, id)
	})

	return q, ok
}
