//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const anonKey = "integration-anon-key"

type quoteRow struct {
	ID        int    `json:"id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

type account struct {
	id       string
	email    string
	password string
	name     string
}

// fakeBackend is an in-memory auth and REST backend speaking the wire format
// the quote and auth clients expect.
type fakeBackend struct {
	server *httptest.Server

	mu        sync.Mutex
	quotes    []quoteRow
	accounts  map[string]*account
	tokens    map[string]string
	favorites map[string]map[int]bool
	nextUser  int

	// confirmEmail makes sign-up wait for verification.
	confirmEmail atomic.Bool

	// failFavorites answers favorite writes with 500.
	failFavorites atomic.Bool

	// favoriteDelay holds favorite writes before they are applied.
	favoriteDelay atomic.Int64

	requests atomic.Int64
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{
		quotes: []quoteRow{
			{1, "The only way to do great work is to love what you do.", "Steve Jobs", "Motivation", "2024-01-01T08:00:00+00:00"},
			{2, "Love all, trust a few, do wrong to none.", "William Shakespeare", "Love", "2024-01-02T08:00:00+00:00"},
			{3, "Success is not final, failure is not fatal.", "Winston Churchill", "Success", "2024-01-03T08:00:00+00:00"},
			{4, "The only true wisdom is in knowing you know nothing.", "Socrates", "Wisdom", "2024-01-04T08:00:00+00:00"},
			{5, "I am so clever that sometimes I don't understand a word I am saying.", "Oscar Wilde", "Humor", "2024-01-05T08:00:00+00:00"},
		},
		accounts:  make(map[string]*account),
		tokens:    make(map[string]string),
		favorites: make(map[string]map[int]bool),
	}

	b.addAccount("reader@example.com", "secret123", "Avid Reader")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/v1/token", b.token)
	mux.HandleFunc("POST /auth/v1/signup", b.signUp)
	mux.HandleFunc("POST /auth/v1/logout", b.logout)
	mux.HandleFunc("GET /auth/v1/user", b.user)
	mux.HandleFunc("GET /rest/v1/quotes", b.listQuotes)
	mux.HandleFunc("POST /rest/v1/rpc/get_random_quotes", b.randomQuotes)
	mux.HandleFunc("GET /rest/v1/favorites", b.listFavorites)
	mux.HandleFunc("POST /rest/v1/favorites", b.addFavorite)
	mux.HandleFunc("DELETE /rest/v1/favorites", b.removeFavorite)

	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)

		if r.Header.Get("apikey") != anonKey {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid API key"})
			return
		}

		mux.ServeHTTP(w, r)
	}))

	return b
}

func (b *fakeBackend) URL() string {
	return b.server.URL
}

func (b *fakeBackend) Close() {
	b.server.Close()
}

func (b *fakeBackend) addAccount(email, password, name string) *account {
	b.nextUser++
	a := &account{
		id:       fmt.Sprintf("user-%d", b.nextUser),
		email:    email,
		password: password,
		name:     name,
	}
	b.accounts[email] = a

	return a
}

// FavoriteIDs returns the stored favorites of the account with email.
func (b *fakeBackend) FavoriteIDs(email string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.accounts[email]
	if !ok {
		return nil
	}

	ids := make([]string, 0, len(b.favorites[a.id]))
	for id := range b.favorites[a.id] {
		ids = append(ids, strconv.Itoa(id))
	}

	sort.Strings(ids)

	return ids
}

func (b *fakeBackend) sessionFor(a *account) map[string]any {
	token := "access-" + a.id
	b.tokens[token] = a.id

	return map[string]any{
		"access_token":  token,
		"refresh_token": "refresh-" + a.id,
		"expires_in":    3600,
		"user":          userJSON(a),
	}
}

func userJSON(a *account) map[string]any {
	return map[string]any{
		"id":            a.id,
		"email":         a.email,
		"user_metadata": map[string]string{"full_name": a.name},
	}
}

// caller returns the account id behind the bearer token, or "".
func (b *fakeBackend) caller(r *http.Request) string {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.tokens[token]
}

func (b *fakeBackend) token(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email        string `json:"email"`
		Password     string `json:"password"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if r.URL.Query().Get("grant_type") == "refresh_token" {
		for _, a := range b.accounts {
			if "refresh-"+a.id == body.RefreshToken {
				writeJSON(w, http.StatusOK, b.sessionFor(a))
				return
			}
		}

		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid Refresh Token",
		})

		return
	}

	a, ok := b.accounts[body.Email]
	if !ok || a.password != body.Password {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid login credentials",
		})

		return
	}

	writeJSON(w, http.StatusOK, b.sessionFor(a))
}

func (b *fakeBackend) signUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string            `json:"email"`
		Password string            `json:"password"`
		Data     map[string]string `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.accounts[body.Email]; exists {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error_code": "user_already_exists",
			"msg":        "User already registered",
		})

		return
	}

	a := b.addAccount(body.Email, body.Password, body.Data["full_name"])

	if b.confirmEmail.Load() {
		writeJSON(w, http.StatusOK, userJSON(a))
		return
	}

	writeJSON(w, http.StatusOK, b.sessionFor(a))
}

func (b *fakeBackend) logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	b.mu.Lock()
	delete(b.tokens, token)
	b.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) user(w http.ResponseWriter, r *http.Request) {
	id := b.caller(r)
	if id == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "invalid JWT"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, a := range b.accounts {
		if a.id == id {
			writeJSON(w, http.StatusOK, userJSON(a))
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"msg": "user not found"})
}

func (b *fakeBackend) listQuotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	b.mu.Lock()
	rows := append([]quoteRow(nil), b.quotes...)
	b.mu.Unlock()

	if c := strings.TrimPrefix(q.Get("category"), "eq."); c != "" {
		rows = filterRows(rows, func(row quoteRow) bool { return row.Category == c })
	}

	if term := strings.TrimPrefix(q.Get("content"), "ilike."); term != "" {
		pattern := likePattern(term)
		rows = filterRows(rows, func(row quoteRow) bool {
			return pattern.MatchString(row.Content)
		})
	}

	if q.Get("order") == "created_at.desc" {
		sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt > rows[j].CreatedAt })
	}

	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n < len(rows) {
		rows = rows[:n]
	}

	if r.Header.Get("Accept") == "application/vnd.pgrst.object+json" {
		if len(rows) != 1 {
			writeJSON(w, http.StatusNotAcceptable, map[string]string{
				"code":    "PGRST116",
				"message": "JSON object requested, multiple (or no) rows returned",
			})

			return
		}

		writeJSON(w, http.StatusOK, rows[0])

		return
	}

	writeJSON(w, http.StatusOK, rows)
}

func (b *fakeBackend) randomQuotes(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	rows := append([]quoteRow(nil), b.quotes...)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, rows)
}

func (b *fakeBackend) listFavorites(w http.ResponseWriter, r *http.Request) {
	id := b.caller(r)
	if id == "" || r.URL.Query().Get("user_id") != "eq."+id {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "JWT required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	embed := r.URL.Query().Get("select") == "quote:quotes(*)"

	out := make([]map[string]any, 0)
	for _, row := range b.quotes {
		if !b.favorites[id][row.ID] {
			continue
		}

		entry := map[string]any{"quote_id": row.ID}
		if embed {
			entry["quote"] = row
		}

		out = append(out, entry)
	}

	writeJSON(w, http.StatusOK, out)
}

func (b *fakeBackend) addFavorite(w http.ResponseWriter, r *http.Request) {
	id := b.caller(r)
	if id == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "JWT required"})
		return
	}

	time.Sleep(time.Duration(b.favoriteDelay.Load()))

	if b.failFavorites.Load() {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "database unavailable"})
		return
	}

	var rows []struct {
		UserID  string `json:"user_id"`
		QuoteID string `json:"quote_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil || len(rows) != 1 || rows[0].UserID != id {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad insert"})
		return
	}

	quoteID, err := strconv.Atoi(rows[0].QuoteID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad quote id"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.favorites[id][quoteID] {
		writeJSON(w, http.StatusConflict, map[string]string{
			"code":    "23505",
			"message": "duplicate key value violates unique constraint",
		})

		return
	}

	if b.favorites[id] == nil {
		b.favorites[id] = make(map[int]bool)
	}

	b.favorites[id][quoteID] = true

	w.WriteHeader(http.StatusCreated)
}

func (b *fakeBackend) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id := b.caller(r)
	if id == "" || r.URL.Query().Get("user_id") != "eq."+id {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "JWT required"})
		return
	}

	if b.failFavorites.Load() {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "database unavailable"})
		return
	}

	quoteID, err := strconv.Atoi(strings.TrimPrefix(r.URL.Query().Get("quote_id"), "eq."))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad quote id"})
		return
	}

	b.mu.Lock()
	delete(b.favorites[id], quoteID)
	b.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func filterRows(rows []quoteRow, keep func(quoteRow) bool) []quoteRow {
	out := rows[:0]
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}

	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// likePattern compiles a PostgREST ilike value: * and % match any run, _ one
// character, and a backslash makes the next character literal.
func likePattern(value string) *regexp.Regexp {
	var b strings.Builder

	b.WriteString("(?is)^")

	escaped := false
	for _, r := range value {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '*' || r == '%':
			b.WriteString(".*")
		case r == '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	b.WriteString("$")

	return regexp.MustCompile(b.String())
}
