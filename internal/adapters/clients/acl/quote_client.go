package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/quotevault/quotevault/internal/adapters/clients"
	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/platform/logging"
	"github.com/quotevault/quotevault/internal/ports"
)

// Data API paths and media types.
const (
	quotesPath      = "/rest/v1/quotes"
	favoritesPath   = "/rest/v1/favorites"
	randomQuotePath = "/rest/v1/rpc/get_random_quotes"

	// mediaSingleObject asks the data API for one row instead of an array.
	mediaSingleObject = "application/vnd.pgrst.object+json"
)

// QuoteClientConfig contains configuration for the quote client.
type QuoteClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be the backend project URL.
	Client *clients.Client

	// ServiceName names the backend in errors and health output.
	ServiceName string

	// AnonKey is the project's public key.
	AnonKey string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// QuoteClient implements ports.QuoteStore and ports.FavoriteStore against
// the backend's data API.
type QuoteClient struct {
	BaseAdapter
	logger *slog.Logger
}

var (
	_ ports.QuoteStore    = (*QuoteClient)(nil)
	_ ports.FavoriteStore = (*QuoteClient)(nil)
	_ ports.HealthChecker = (*QuoteClient)(nil)
)

// NewQuoteClient creates a new quote client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := cfg.ServiceName
	if name == "" {
		name = "backend"
	}

	return &QuoteClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, name, cfg.AnonKey),
		logger:      logger,
	}
}

// quoteRow is a row of the quotes table.
type quoteRow struct {
	ID        rowID  `json:"id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

// favoriteRow is a projection of the favorites table.
type favoriteRow struct {
	QuoteID rowID     `json:"quote_id"`
	Quote   *quoteRow `json:"quote,omitempty"`
}

// favoriteInsert is the body of a favorite insert.
type favoriteInsert struct {
	UserID  string `json:"user_id"`
	QuoteID string `json:"quote_id"`
}

// rowID accepts both numeric and string primary keys.
type rowID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *rowID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*id = rowID(s)

		return nil
	}

	if string(b) == "null" {
		*id = ""
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}

	*id = rowID(n.String())

	return nil
}

// likeLiteral escapes LIKE wildcards in a search term. The backend rewrites
// every * to %, so a literal * can only match as a single-character wildcard.
var likeLiteral = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`, `*`, `_`)

// Search implements ports.QuoteStore.
func (c *QuoteClient) Search(ctx context.Context, session *domain.Session, q ports.QuoteQuery) ([]domain.Quote, error) {
	filter := q.Filter.Normalized()

	query := url.Values{"select": {"*"}}
	if !filter.Category.IsAll() {
		query.Set("category", "eq."+string(filter.Category))
	}

	if filter.Term != "" {
		query.Set("content", "ilike.*"+likeLiteral.Replace(filter.Term)+"*")
	}

	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	c.logger.DebugContext(ctx, "searching quotes",
		slog.String("term", filter.Term),
		slog.String("category", string(filter.Category)),
	)

	rows, err := Fetch[[]quoteRow](ctx, &c.BaseAdapter, &clients.Request{
		Method: http.MethodGet,
		Path:   quotesPath,
		Query:  query,
		Header: c.AuthHeader(session),
	}, "search quotes", "")
	if err != nil {
		return nil, err
	}

	return c.translateRows(ctx, *rows)
}

// Latest implements ports.QuoteStore.
func (c *QuoteClient) Latest(ctx context.Context, session *domain.Session) (*domain.Quote, error) {
	header := c.AuthHeader(session)
	header.Set("Accept", mediaSingleObject)

	row, err := Fetch[quoteRow](ctx, &c.BaseAdapter, &clients.Request{
		Method: http.MethodGet,
		Path:   quotesPath,
		Query: url.Values{
			"select": {"*"},
			"order":  {"created_at.desc"},
			"limit":  {"1"},
		},
		Header: header,
	}, "latest quote", "latest")
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return c.translateQuote(row)
}

// Random implements ports.QuoteStore.
func (c *QuoteClient) Random(ctx context.Context, session *domain.Session) ([]domain.Quote, error) {
	rows, err := Fetch[[]quoteRow](ctx, &c.BaseAdapter, &clients.Request{
		Method: http.MethodPost,
		Path:   randomQuotePath,
		Header: c.AuthHeader(session),
		Body:   struct{}{},
	}, "random quotes", "")
	if err != nil {
		return nil, err
	}

	return c.translateRows(ctx, *rows)
}

// FavoriteIDs implements ports.FavoriteStore.
func (c *QuoteClient) FavoriteIDs(ctx context.Context, session *domain.Session) (map[string]struct{}, error) {
	userID, err := requireUser(session)
	if err != nil {
		return nil, err
	}

	rows, err := Fetch[[]favoriteRow](ctx, &c.BaseAdapter, &clients.Request{
		Method: http.MethodGet,
		Path:   favoritesPath,
		Query: url.Values{
			"select":  {"quote_id"},
			"user_id": {"eq." + userID},
		},
		Header: c.AuthHeader(session),
	}, "list favorite ids", "")
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(*rows))
	for _, r := range *rows {
		ids[string(r.QuoteID)] = struct{}{}
	}

	return ids, nil
}

// ListFavorites implements ports.FavoriteStore.
func (c *QuoteClient) ListFavorites(ctx context.Context, session *domain.Session) ([]domain.Quote, error) {
	userID, err := requireUser(session)
	if err != nil {
		return nil, err
	}

	rows, err := Fetch[[]favoriteRow](ctx, &c.BaseAdapter, &clients.Request{
		Method: http.MethodGet,
		Path:   favoritesPath,
		Query: url.Values{
			"select":  {"quote:quotes(*)"},
			"user_id": {"eq." + userID},
		},
		Header: c.AuthHeader(session),
	}, "list favorites", "")
	if err != nil {
		return nil, err
	}

	embedded := make([]quoteRow, 0, len(*rows))
	for _, r := range *rows {
		// Favorites whose quote was deleted embed null.
		if r.Quote != nil {
			embedded = append(embedded, *r.Quote)
		}
	}

	quotes, err := c.translateRows(ctx, embedded)
	if err != nil {
		return nil, err
	}

	for i := range quotes {
		quotes[i].IsFavorite = true
	}

	return quotes, nil
}

// AddFavorite implements ports.FavoriteStore.
func (c *QuoteClient) AddFavorite(ctx context.Context, session *domain.Session, quoteID string) error {
	userID, err := requireUser(session)
	if err != nil {
		return err
	}

	if err := ValidateRequired(quoteID, "quote_id"); err != nil {
		return err
	}

	header := c.AuthHeader(session)
	header.Set("Prefer", "return=minimal")

	return c.Exec(ctx, &clients.Request{
		Method: http.MethodPost,
		Path:   favoritesPath,
		Header: header,
		Body:   []favoriteInsert{{UserID: userID, QuoteID: quoteID}},
	}, "add favorite", quoteID)
}

// RemoveFavorite implements ports.FavoriteStore.
func (c *QuoteClient) RemoveFavorite(ctx context.Context, session *domain.Session, quoteID string) error {
	userID, err := requireUser(session)
	if err != nil {
		return err
	}

	if err := ValidateRequired(quoteID, "quote_id"); err != nil {
		return err
	}

	return c.Exec(ctx, &clients.Request{
		Method: http.MethodDelete,
		Path:   favoritesPath,
		Query: url.Values{
			"user_id":  {"eq." + userID},
			"quote_id": {"eq." + quoteID},
		},
		Header: c.AuthHeader(session),
	}, "remove favorite", quoteID)
}

// Name implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return c.ServiceName()
}

// Check implements ports.HealthChecker with a one-row anonymous read. An
// open breaker fails the check without touching the network.
func (c *QuoteClient) Check(ctx context.Context) error {
	if snap := c.Breaker(); snap.State == clients.StateOpen && time.Now().Before(snap.RetryAt) {
		return domain.NewUnavailableError(c.ServiceName(),
			fmt.Sprintf("breaker open after %d failures, next probe at %s", snap.Failures, snap.RetryAt.Format(time.TimeOnly)))
	}

	_, err := c.Search(ctx, nil, ports.QuoteQuery{Filter: domain.Filter{}, Limit: 1})

	return err
}

func (c *QuoteClient) translateRows(ctx context.Context, rows []quoteRow) ([]domain.Quote, error) {
	quotes, err := TranslateSlice(rows, c.translateQuote)
	if err != nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), err.Error())
	}

	logging.Trace(ctx, "translated quote rows", slog.Int("count", len(quotes)))

	return quotes, nil
}

// translateQuote converts a row to a domain Quote. Unknown categories pass
// through untouched; only the selector set is closed.
func (c *QuoteClient) translateQuote(row *quoteRow) (*domain.Quote, error) {
	if err := ValidateRequired(string(row.ID), "id"); err != nil {
		return nil, err
	}

	q := &domain.Quote{
		ID:       string(row.ID),
		Content:  row.Content,
		Author:   row.Author,
		Category: domain.Category(row.Category),
	}

	if row.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, normalizeTimestamp(row.CreatedAt)); err == nil {
			q.CreatedAt = t
		}
	}

	return q, nil
}

// normalizeTimestamp turns Postgres' "2024-01-02 03:04:05.6+00" into RFC 3339.
func normalizeTimestamp(s string) string {
	s = strings.Replace(s, " ", "T", 1)
	if n := len(s); n >= 3 && (s[n-3] == '+' || s[n-3] == '-') && !strings.Contains(s[n-3:], ":") {
		s += ":00"
	}

	return s
}

func requireUser(session *domain.Session) (string, error) {
	id := session.UserID()
	if id == "" {
		return "", domain.NewUnauthenticatedError("")
	}

	return id, nil
}
