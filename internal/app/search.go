package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/platform/logging"
	"github.com/quotevault/quotevault/internal/ports"
)

// Search defaults.
const (
	DefaultSearchDebounce = 500 * time.Millisecond
	DefaultSearchLimit    = 20
)

const msgSearchFailed = "Search failed. Edit the search to try again."

// SearchConfig configures a SearchScreen.
type SearchConfig struct {
	// Debounce is the quiescence window after the last filter edit.
	Debounce time.Duration

	// Limit caps the result set.
	Limit int
}

// SearchView is a consistent view of the search screen.
type SearchView struct {
	// Filter is the filter being edited.
	Filter domain.Filter

	// ResultFilter is the filter that produced Results.
	ResultFilter domain.Filter

	Results []domain.Quote
	State   LoadState
	Loaded  bool

	// Seq is the sequence number of the latest issued query.
	Seq uint64

	// Pending reports whether a debounced query is armed.
	Pending bool
}

// SearchScreen is the debounced search-as-you-type screen.
//
// Each filter edit restarts the quiescence timer; when it fires, one query
// runs with the filter as it is at that moment. Every issued query takes the
// next sequence number and its response is applied only while that number
// is still the latest, so a slow older response never replaces a newer one.
// A failed query keeps the previous results and is not retried.
type SearchScreen struct {
	deps      ScreenDeps
	limit     int
	delay     *Delayer
	favorites *Toggle[string]

	mu           sync.Mutex
	base         context.Context
	mounted      bool
	filter       domain.Filter
	resultFilter domain.Filter
	results      []domain.Quote
	state        LoadState
	loaded       bool
	issued       uint64
	running      sync.WaitGroup
}

// NewSearchScreen creates an unmounted search screen with the All filter.
func NewSearchScreen(deps ScreenDeps, cfg SearchConfig) *SearchScreen {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultSearchLimit
	}

	if cfg.Debounce < 0 {
		cfg.Debounce = DefaultSearchDebounce
	}

	deps.Recorder = orNop(deps.Recorder)

	s := &SearchScreen{
		deps:   deps,
		limit:  cfg.Limit,
		delay:  NewDelayer(cfg.Debounce),
		base:   context.Background(),
		filter: domain.Filter{Category: domain.CategoryAll},
		state:  StateIdle,
	}

	s.favorites = newFavoriteToggle(deps, s.isFavorite, s.setFavorite, MsgToggleFailed)

	return s
}

// Mount starts the screen and runs the first query immediately.
func (s *SearchScreen) Mount(ctx context.Context) error {
	s.mu.Lock()
	s.mounted = true
	s.base = context.WithoutCancel(ctx)
	s.mu.Unlock()

	s.cancelPending()

	return s.issue(ctx, TriggerMount)
}

// Unmount stops the screen: the pending timer is cancelled and responses of
// queries still in flight are ignored.
func (s *SearchScreen) Unmount() {
	s.cancelPending()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mounted = false
	s.issued++
	s.state = StateIdle
}

// Handle dispatches a lifecycle trigger.
func (s *SearchScreen) Handle(ctx context.Context, t Trigger) error {
	switch t {
	case TriggerRefresh:
		return s.Refresh(ctx)
	case TriggerFocus:
		return s.Focus(ctx)
	default:
		return s.Mount(ctx)
	}
}

// Refresh re-runs the current filter at once, keeping results visible.
func (s *SearchScreen) Refresh(ctx context.Context) error {
	if !s.isMounted() {
		return s.Mount(ctx)
	}

	s.cancelPending()

	return s.issue(ctx, TriggerRefresh)
}

// Focus silently re-runs the current filter so favorite changes made on
// other screens show up.
func (s *SearchScreen) Focus(ctx context.Context) error {
	if !s.isMounted() {
		return s.Mount(ctx)
	}

	return s.issue(ctx, TriggerFocus)
}

// SetFilter replaces the filter and restarts the quiescence timer. Before
// Mount the filter is only recorded.
func (s *SearchScreen) SetFilter(f domain.Filter) {
	s.mu.Lock()
	s.filter = domain.Filter{Term: f.Term, Category: f.Category}
	if s.filter.Category == "" {
		s.filter.Category = domain.CategoryAll
	}

	mounted := s.mounted
	base := s.base
	s.mu.Unlock()

	if !mounted {
		return
	}

	s.running.Add(1)

	replaced := s.delay.Schedule(func() {
		defer s.running.Done()
		_ = s.issue(base, TriggerQuery)
	})
	if replaced {
		s.running.Done()
	}
}

// SetTerm edits the free-text term.
func (s *SearchScreen) SetTerm(term string) {
	s.mu.Lock()
	f := s.filter
	s.mu.Unlock()

	f.Term = term
	s.SetFilter(f)
}

// SetCategory selects a category.
func (s *SearchScreen) SetCategory(c domain.Category) {
	s.mu.Lock()
	f := s.filter
	s.mu.Unlock()

	f.Category = c
	s.SetFilter(f)
}

// View returns the current screen state.
func (s *SearchScreen) View() SearchView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SearchView{
		Filter:       s.filter,
		ResultFilter: s.resultFilter,
		Results:      s.results,
		State:        s.state,
		Loaded:       s.loaded,
		Seq:          s.issued,
		Pending:      s.delay.Pending(),
	}
}

// ToggleFavorite flips the favorite state of a result.
func (s *SearchScreen) ToggleFavorite(ctx context.Context, quoteID string) (*Pending, error) {
	return s.favorites.Toggle(ctx, quoteID)
}

// Find returns the result with id if the screen shows it.
func (s *SearchScreen) Find(id string) (domain.Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return findQuote(s.results, id)
}

// Settle blocks until the armed debounced query has fired and finished and
// every pending toggle has settled.
func (s *SearchScreen) Settle() {
	s.running.Wait()
	s.favorites.Wait()
}

func (s *SearchScreen) cancelPending() {
	if s.delay.Cancel() {
		s.running.Done()
	}
}

func (s *SearchScreen) isMounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mounted
}

// issue runs one query with the current filter snapshot.
func (s *SearchScreen) issue(ctx context.Context, trigger Trigger) error {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	filter := s.filter.Normalized()

	switch {
	case !s.loaded, trigger == TriggerMount:
		s.state = StateLoading
	case trigger == TriggerRefresh:
		s.state = StateRefreshing
	}
	s.mu.Unlock()

	logger := logging.FromContextOr(ctx, s.deps.logger()).With(
		slog.Uint64("seq", seq),
		slog.String("term", filter.Term),
		slog.String("category", string(filter.Category)),
		slog.String("trigger", string(trigger)),
	)
	logger.DebugContext(ctx, "issuing search query")

	quotes, err := s.query(ctx, filter)

	s.mu.Lock()
	latest := seq == s.issued && s.mounted
	if latest {
		s.state = StateIdle
		if err == nil {
			s.results = quotes
			s.resultFilter = filter
			s.loaded = true
		}
	}
	s.mu.Unlock()

	switch {
	case !latest:
		s.deps.Recorder.QueryOutcome(OutcomeStale)
		logger.DebugContext(ctx, "discarding stale search response")

		return nil

	case err != nil:
		s.deps.Recorder.QueryOutcome(OutcomeFailed)
		logger.ErrorContext(ctx, "search query failed", slog.Any("error", err))

		if s.deps.Notifier != nil {
			s.deps.Notifier.Notify(ctx, domain.NoticeError, "Error", domain.UserMessage(err, msgSearchFailed))
		}

		return err

	default:
		s.deps.Recorder.QueryOutcome(OutcomeApplied)
		logger.DebugContext(ctx, "applied search results", slog.Int("count", len(quotes)))

		return nil
	}
}

func (s *SearchScreen) query(ctx context.Context, filter domain.Filter) ([]domain.Quote, error) {
	session, err := s.deps.Sessions.Current(ctx)
	if err != nil {
		return nil, err
	}

	quotes, ids, err := Parallel2(ctx,
		func(ctx context.Context) ([]domain.Quote, error) {
			return s.deps.Quotes.Search(ctx, session, ports.QuoteQuery{Filter: filter, Limit: s.limit})
		},
		s.deps.favoriteIDs(session),
	)
	if err != nil {
		return nil, err
	}

	return domain.MarkFavorites(quotes, ids), nil
}

func (s *SearchScreen) isFavorite(id string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return findFavorite(s.results, id)
}

func (s *SearchScreen) setFavorite(id string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = setFavorite(s.results, id, value)
}
