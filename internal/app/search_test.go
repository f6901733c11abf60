package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/mocks"
	"github.com/quotevault/quotevault/internal/ports"
)

type searchFixture struct {
	quotes    *mocks.MockQuoteStore
	favorites *mocks.MockFavoriteStore
	notices   *NoticeFeed
	rec       *recorderSpy
	screen    *SearchScreen
}

func newSearchFixture(t *testing.T, session *domain.Session, debounce time.Duration) *searchFixture {
	t.Helper()

	f := &searchFixture{
		quotes:    mocks.NewMockQuoteStore(t),
		favorites: mocks.NewMockFavoriteStore(t),
		notices:   NewNoticeFeed(10, nil),
		rec:       newRecorderSpy(),
	}

	f.screen = NewSearchScreen(ScreenDeps{
		Quotes:    f.quotes,
		Favorites: f.favorites,
		Sessions:  staticSessions{session: session},
		Notifier:  f.notices,
		Recorder:  f.rec,
		Logger:    discardLogger(),
	}, SearchConfig{Debounce: debounce})

	t.Cleanup(func() {
		f.screen.Unmount()
		f.screen.Settle()
	})

	return f
}

func withFilter(term string, category domain.Category) interface{} {
	return mock.MatchedBy(func(q ports.QuoteQuery) bool {
		return q.Filter.Term == term && q.Filter.Category == category
	})
}

func TestNewSearchScreen_Defaults(t *testing.T) {
	s := NewSearchScreen(ScreenDeps{}, SearchConfig{Debounce: -1})

	assert.Equal(t, DefaultSearchDebounce, s.delay.Window())
	assert.Equal(t, DefaultSearchLimit, s.limit)

	v := s.View()
	assert.Equal(t, domain.Filter{Category: domain.CategoryAll}, v.Filter)
	assert.Equal(t, StateIdle, v.State)
	assert.False(t, v.Loaded)
}

func TestSearchScreen_MountIssuesUnfilteredQuery(t *testing.T) {
	f := newSearchFixture(t, nil, time.Hour)

	f.quotes.EXPECT().
		Search(mock.Anything, (*domain.Session)(nil), ports.QuoteQuery{
			Filter: domain.Filter{Term: "", Category: domain.CategoryAll},
			Limit:  DefaultSearchLimit,
		}).
		Return([]domain.Quote{quote("q1", domain.CategoryLove)}, nil).
		Once()

	require.NoError(t, f.screen.Mount(context.Background()))

	v := f.screen.View()
	assert.Equal(t, []string{"q1"}, ids(v.Results))
	assert.True(t, v.Loaded)
	assert.Equal(t, StateIdle, v.State)
	assert.Equal(t, uint64(1), v.Seq)
	assert.Equal(t, 1, f.rec.count("query:applied"))
}

func TestSearchScreen_FilterBeforeMountIsOnlyRecorded(t *testing.T) {
	f := newSearchFixture(t, nil, 10*time.Millisecond)

	f.screen.SetTerm("  hope ")
	f.screen.SetCategory(domain.CategoryLove)

	assert.False(t, f.screen.View().Pending)

	f.quotes.EXPECT().
		Search(mock.Anything, mock.Anything, withFilter("hope", domain.CategoryLove)).
		Return([]domain.Quote{}, nil).
		Once()

	require.NoError(t, f.screen.Mount(context.Background()))
}

func TestSearchScreen_DebounceCoalescesEdits(t *testing.T) {
	f := newSearchFixture(t, nil, 30*time.Millisecond)

	f.quotes.EXPECT().
		Search(mock.Anything, mock.Anything, withFilter("", domain.CategoryAll)).
		Return([]domain.Quote{}, nil).
		Once()

	require.NoError(t, f.screen.Mount(context.Background()))

	f.quotes.EXPECT().
		Search(mock.Anything, mock.Anything, withFilter("life", domain.CategoryAll)).
		Return([]domain.Quote{quote("q7", domain.CategoryWisdom)}, nil).
		Once()

	for _, term := range []string{"l", "li", "lif", "life"} {
		f.screen.SetTerm(term)
	}

	assert.True(t, f.screen.View().Pending)

	f.screen.Settle()

	v := f.screen.View()
	assert.False(t, v.Pending)
	assert.Equal(t, []string{"q7"}, ids(v.Results))
	assert.Equal(t, "life", v.ResultFilter.Term)
	assert.Equal(t, uint64(2), v.Seq, "one query for the mount and one for the edits")
}

func TestSearchScreen_CategoryAndTerm(t *testing.T) {
	f := newSearchFixture(t, nil, 5*time.Millisecond)

	f.quotes.EXPECT().
		Search(mock.Anything, mock.Anything, withFilter("", domain.CategoryAll)).
		Return([]domain.Quote{}, nil).
		Once()

	require.NoError(t, f.screen.Mount(context.Background()))

	f.quotes.EXPECT().
		Search(mock.Anything, mock.Anything, ports.QuoteQuery{
			Filter: domain.Filter{Term: "hope", Category: domain.CategoryLove},
			Limit:  DefaultSearchLimit,
		}).
		Return([]domain.Quote{quote("q3", domain.CategoryLove)}, nil).
		Once()

	f.screen.SetFilter(domain.Filter{Term: "hope", Category: domain.CategoryLove})
	f.screen.Settle()

	v := f.screen.View()
	assert.Equal(t, []string{"q3"}, ids(v.Results))
	assert.Equal(t, domain.Filter{Term: "hope", Category: domain.CategoryLove}, v.ResultFilter)
}

func TestSearchScreen_StaleResponseIsDiscarded(t *testing.T) {
	f := newSearchFixture(t, nil, time.Hour)

	f.quotes.EXPECT().
		Search(mock.Anything, mock.Anything, withFilter("", domain.CategoryAll)).
		Return([]domain.Quote{}, nil).
		Once()

	require.NoError(t, f.screen.Mount(context.Background()))

	started := make(chan struct{})
	release := make(chan struct{})

	f.quotes.EXPECT().
		Search(mock.Anything, mock.Anything, withFilter("first", domain.CategoryAll)).
		RunAndReturn(func(context.Context, *domain.Session, ports.QuoteQuery) ([]domain.Quote, error) {
			close(started)
			<-release

			return []domain.Quote{quote("from-first", domain.CategoryHumor)}, nil
		}).
		Once()

	f.quotes.EXPECT().
		Search(mock.Anything, mock.Anything, withFilter("second", domain.CategoryAll)).
		Return([]domain.Quote{quote("from-second", domain.CategoryHumor)}, nil).
		Once()

	f.screen.SetTerm("first")

	firstDone := make(chan error, 1)
	go func() { firstDone <- f.screen.Refresh(context.Background()) }()

	<-started

	f.screen.SetTerm("second")
	require.NoError(t, f.screen.Refresh(context.Background()))

	assert.Equal(t, []string{"from-second"}, ids(f.screen.View().Results))

	close(release)
	require.NoError(t, <-firstDone)

	v := f.screen.View()
	assert.Equal(t, []string{"from-second"}, ids(v.Results))
	assert.Equal(t, "second", v.ResultFilter.Term)
	assert.Equal(t, 1, f.rec.count("query:stale"))
}

func TestSearchScreen_FailureKeepsPreviousResults(t *testing.T) {
	f := newSearchFixture(t, nil, time.Hour)

	f.quotes.EXPECT().
		Search(mock.Anything, mock.Anything, withFilter("", domain.CategoryAll)).
		Return([]domain.Quote{quote("q1", domain.CategoryLove)}, nil).
		Once()

	require.NoError(t, f.screen.Mount(context.Background()))

	f.quotes.EXPECT().
		Search(mock.Anything, mock.Anything, withFilter("x", domain.CategoryAll)).
		Return(nil, domain.NewUnavailableError("backend", "timeout")).
		Once()

	f.screen.SetTerm("x")
	err := f.screen.Refresh(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))

	v := f.screen.View()
	assert.Equal(t, []string{"q1"}, ids(v.Results))
	assert.Equal(t, domain.Filter{Category: domain.CategoryAll}, v.ResultFilter)
	assert.Equal(t, "x", v.Filter.Term)
	assert.Equal(t, StateIdle, v.State)

	got := f.notices.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, msgSearchFailed, got[0].Message)
	assert.Equal(t, 1, f.rec.count("query:failed"))
}

func TestSearchScreen_UnmountCancelsPendingQuery(t *testing.T) {
	f := newSearchFixture(t, nil, 20*time.Millisecond)

	f.quotes.EXPECT().
		Search(mock.Anything, mock.Anything, withFilter("", domain.CategoryAll)).
		Return([]domain.Quote{}, nil).
		Once()

	require.NoError(t, f.screen.Mount(context.Background()))

	f.screen.SetTerm("never sent")
	f.screen.Unmount()
	f.screen.Settle()

	time.Sleep(40 * time.Millisecond)
	assert.False(t, f.screen.View().Pending)
}

func TestSearchScreen_AnnotatesFavorites(t *testing.T) {
	f := newSearchFixture(t, testSession, time.Hour)

	f.quotes.EXPECT().
		Search(mock.Anything, testSession, mock.Anything).
		Return([]domain.Quote{quote("q1", domain.CategoryLove), quote("q2", domain.CategoryLove)}, nil).
		Once()
	f.favorites.EXPECT().
		FavoriteIDs(mock.Anything, testSession).
		Return(map[string]struct{}{"q2": {}}, nil).
		Once()

	require.NoError(t, f.screen.Mount(context.Background()))

	results := f.screen.View().Results
	require.Len(t, results, 2)
	assert.False(t, results[0].IsFavorite)
	assert.True(t, results[1].IsFavorite)
}

func TestSearchScreen_ToggleFavorite(t *testing.T) {
	f := newSearchFixture(t, testSession, time.Hour)

	f.quotes.EXPECT().
		Search(mock.Anything, testSession, mock.Anything).
		Return([]domain.Quote{quote("q1", domain.CategoryLove)}, nil).
		Once()
	f.favorites.EXPECT().
		FavoriteIDs(mock.Anything, testSession).
		Return(map[string]struct{}{}, nil).
		Once()
	f.favorites.EXPECT().
		AddFavorite(mock.Anything, testSession, "q1").
		Return(nil).
		Once()

	require.NoError(t, f.screen.Mount(context.Background()))

	p, err := f.screen.ToggleFavorite(context.Background(), "q1")
	require.NoError(t, err)
	assert.True(t, p.Value)

	found, ok := f.screen.Find("q1")
	require.True(t, ok)
	assert.True(t, found.IsFavorite)

	require.NoError(t, p.Wait())
}

func TestSearchScreen_HandleBeforeMountMounts(t *testing.T) {
	for _, trigger := range []Trigger{TriggerRefresh, TriggerFocus} {
		t.Run(string(trigger), func(t *testing.T) {
			f := newSearchFixture(t, nil, time.Hour)

			f.quotes.EXPECT().
				Search(mock.Anything, mock.Anything, mock.Anything).
				Return([]domain.Quote{}, nil).
				Once()

			require.NoError(t, f.screen.Handle(context.Background(), trigger))
			assert.True(t, f.screen.View().Loaded)
		})
	}
}
