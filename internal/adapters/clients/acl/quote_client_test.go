package acl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/ports"
)

var testSession = &domain.Session{
	User:        domain.User{ID: "user-1", Email: "ada@example.com"},
	AccessToken: "user-token",
}

// setupQuoteClient creates a QuoteClient with a test HTTP server.
func setupQuoteClient(t *testing.T, handler http.HandlerFunc) *QuoteClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewQuoteClient(QuoteClientConfig{
		Client:  newBackendClient(t, server.URL),
		AnonKey: "anon-key",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewQuoteClient_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() {
		NewQuoteClient(QuoteClientConfig{Logger: slog.Default()})
	})
}

func TestNewQuoteClient_DefaultsServiceName(t *testing.T) {
	c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {})

	assert.Equal(t, "backend", c.Name())
	assert.NotNil(t, c.logger)
}

func TestQuoteClient_Search(t *testing.T) {
	tests := []struct {
		name      string
		filter    domain.Filter
		limit     int
		wantQuery map[string]string
		absent    []string
	}{
		{
			name:      "unfiltered",
			filter:    domain.Filter{},
			limit:     20,
			wantQuery: map[string]string{"select": "*", "limit": "20"},
			absent:    []string{"category", "content"},
		},
		{
			name:      "category only",
			filter:    domain.Filter{Category: domain.CategoryLove},
			limit:     20,
			wantQuery: map[string]string{"category": "eq.Love"},
			absent:    []string{"content"},
		},
		{
			name:      "term only with All",
			filter:    domain.Filter{Term: "  life ", Category: domain.CategoryAll},
			limit:     20,
			wantQuery: map[string]string{"content": "ilike.*life*"},
			absent:    []string{"category"},
		},
		{
			name:      "term and category",
			filter:    domain.Filter{Term: "dream", Category: domain.CategorySuccess},
			wantQuery: map[string]string{"content": "ilike.*dream*", "category": "eq.Success"},
			absent:    []string{"limit"},
		},
		{
			name:      "wildcards in term are literal",
			filter:    domain.Filter{Term: `50% a_b c\d`},
			limit:     20,
			wantQuery: map[string]string{"content": `ilike.*50\% a\_b c\\d*`},
		},
		{
			name:      "star matches one character",
			filter:    domain.Filter{Term: "5*"},
			limit:     20,
			wantQuery: map[string]string{"content": "ilike.*5_*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/rest/v1/quotes", r.URL.Path)
				assert.Equal(t, "anon-key", r.Header.Get("apikey"))
				assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))

				q := r.URL.Query()
				for k, v := range tt.wantQuery {
					assert.Equal(t, v, q.Get(k), "query param %s", k)
				}

				for _, k := range tt.absent {
					assert.False(t, q.Has(k), "unexpected query param %s", k)
				}

				writeJSON(t, w, http.StatusOK, []map[string]any{
					{"id": 7, "content": "Dream big", "author": "Anon", "category": "Success", "created_at": "2024-01-02 03:04:05.6+00"},
				})
			})

			quotes, err := c.Search(context.Background(), nil, ports.QuoteQuery{Filter: tt.filter, Limit: tt.limit})

			require.NoError(t, err)
			require.Len(t, quotes, 1)
			assert.Equal(t, "7", quotes[0].ID)
			assert.Equal(t, domain.CategorySuccess, quotes[0].Category)
			assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 600_000_000, time.UTC), quotes[0].CreatedAt.UTC())
			assert.False(t, quotes[0].IsFavorite)
		})
	}
}

func TestQuoteClient_SearchUsesSessionToken(t *testing.T) {
	c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, []any{})
	})

	quotes, err := c.Search(context.Background(), testSession, ports.QuoteQuery{})

	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestQuoteClient_SearchErrors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := c.Search(context.Background(), nil, ports.QuoteQuery{})
		assert.True(t, domain.IsUnavailable(err))
	})

	t.Run("row without id", func(t *testing.T) {
		c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, []map[string]any{{"content": "orphan"}})
		})

		_, err := c.Search(context.Background(), nil, ports.QuoteQuery{})
		require.Error(t, err)
		assert.True(t, domain.IsUnavailable(err))
		assert.Contains(t, err.Error(), "id")
	})

	t.Run("malformed body", func(t *testing.T) {
		c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		})

		_, err := c.Search(context.Background(), nil, ports.QuoteQuery{})
		assert.True(t, domain.IsUnavailable(err))
	})
}

func TestQuoteClient_Latest(t *testing.T) {
	t.Run("single object mode", func(t *testing.T) {
		c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
			assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))

			writeJSON(t, w, http.StatusOK, map[string]any{
				"id": "q-9", "content": "Today", "author": "A", "category": "Wisdom", "created_at": "2024-05-01T09:00:00Z",
			})
		})

		q, err := c.Latest(context.Background(), nil)

		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Equal(t, "q-9", q.ID)
		assert.Equal(t, domain.CategoryWisdom, q.Category)
	})

	t.Run("no rows is nil", func(t *testing.T) {
		c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusNotAcceptable, map[string]string{
				"code":    "PGRST116",
				"message": "JSON object requested, multiple (or no) rows returned",
			})
		})

		q, err := c.Latest(context.Background(), nil)

		require.NoError(t, err)
		assert.Nil(t, q)
	})

	t.Run("failure propagates", func(t *testing.T) {
		c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		q, err := c.Latest(context.Background(), nil)

		assert.Nil(t, q)
		assert.True(t, domain.IsUnavailable(err))
	})
}

func TestQuoteClient_Random(t *testing.T) {
	c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/rpc/get_random_quotes", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{}`, string(body))

		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"id": 1, "content": "a", "author": "x", "category": "Humor"},
			{"id": 2, "content": "b", "author": "y", "category": "Love"},
		})
	})

	quotes, err := c.Random(context.Background(), testSession)

	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, []string{"1", "2"}, []string{quotes[0].ID, quotes[1].ID})
	assert.True(t, quotes[0].CreatedAt.IsZero())
}

func TestQuoteClient_FavoriteIDs(t *testing.T) {
	c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/favorites", r.URL.Path)
		assert.Equal(t, "quote_id", r.URL.Query().Get("select"))
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))

		writeJSON(t, w, http.StatusOK, []map[string]any{{"quote_id": 3}, {"quote_id": "q-4"}})
	})

	ids, err := c.FavoriteIDs(context.Background(), testSession)

	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"3": {}, "q-4": {}}, ids)
}

func TestQuoteClient_ListFavorites(t *testing.T) {
	c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "quote:quotes(*)", r.URL.Query().Get("select"))
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))

		_, _ = w.Write([]byte(`[
			{"quote":{"id":5,"content":"kept","author":"A","category":"Love"}},
			{"quote":null}
		]`))
	})

	quotes, err := c.ListFavorites(context.Background(), testSession)

	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "5", quotes[0].ID)
	assert.True(t, quotes[0].IsFavorite)
}

func TestQuoteClient_AddFavorite(t *testing.T) {
	c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/favorites", r.URL.Path)
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `[{"user_id":"user-1","quote_id":"q-1"}]`, string(body))

		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, c.AddFavorite(context.Background(), testSession, "q-1"))
}

func TestQuoteClient_AddFavoriteDuplicate(t *testing.T) {
	c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]string{"code": "23505", "message": "duplicate key value"})
	})

	err := c.AddFavorite(context.Background(), testSession, "q-1")

	assert.True(t, domain.IsConflict(err))
}

func TestQuoteClient_AddFavoriteIsNotRetried(t *testing.T) {
	calls := 0
	c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := c.AddFavorite(context.Background(), testSession, "q-1")

	assert.True(t, domain.IsUnavailable(err))
	assert.Equal(t, 1, calls)
}

func TestQuoteClient_RemoveFavorite(t *testing.T) {
	c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))
		assert.Equal(t, "eq.q-2", r.URL.Query().Get("quote_id"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.RemoveFavorite(context.Background(), testSession, "q-2"))
}

func TestQuoteClient_FavoritesRequireSession(t *testing.T) {
	c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})
	ctx := context.Background()

	_, err := c.FavoriteIDs(ctx, nil)
	assert.True(t, domain.IsUnauthenticated(err))

	_, err = c.ListFavorites(ctx, nil)
	assert.True(t, domain.IsUnauthenticated(err))

	assert.True(t, domain.IsUnauthenticated(c.AddFavorite(ctx, nil, "q-1")))
	assert.True(t, domain.IsUnauthenticated(c.RemoveFavorite(ctx, &domain.Session{}, "q-1")))
	assert.True(t, domain.IsValidation(c.AddFavorite(ctx, testSession, "")))
}

func TestQuoteClient_Check(t *testing.T) {
	c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		writeJSON(t, w, http.StatusOK, []any{})
	})

	assert.NoError(t, c.Check(context.Background()))
}

func TestQuoteClient_CheckWithOpenBreaker(t *testing.T) {
	var hits atomic.Int32

	c := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	for range 10 {
		require.Error(t, c.Check(context.Background()))
	}

	require.Equal(t, int32(10), hits.Load())

	err := c.Check(context.Background())

	require.True(t, domain.IsUnavailable(err))
	assert.Contains(t, err.Error(), "breaker open after 10 failures")
	assert.Equal(t, int32(10), hits.Load(), "open breaker skips the network")
}

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-02T03:04:05Z", "2024-01-02T03:04:05Z"},
		{"2024-01-02 03:04:05+00", "2024-01-02T03:04:05+00:00"},
		{"2024-01-02 03:04:05.123-05", "2024-01-02T03:04:05.123-05:00"},
		{"2024-01-02T03:04:05+02:00", "2024-01-02T03:04:05+02:00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeTimestamp(tt.in))
		})
	}
}
