package dto

import (
	"time"

	"github.com/quotevault/quotevault/internal/app"
	"github.com/quotevault/quotevault/internal/domain"
)

// QuoteResponse is a quote as shown to the viewer.
type QuoteResponse struct {
	ID         string     `json:"id"`
	Content    string     `json:"content"`
	Author     string     `json:"author"`
	Category   string     `json:"category"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	IsFavorite bool       `json:"isFavorite"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	resp := QuoteResponse{
		ID:         q.ID,
		Content:    q.Content,
		Author:     q.Author,
		Category:   string(q.Category),
		IsFavorite: q.IsFavorite,
	}

	if !q.CreatedAt.IsZero() {
		at := q.CreatedAt
		resp.CreatedAt = &at
	}

	return resp
}

// NewQuoteResponses converts a slice of quotes. The result is never nil.
func NewQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, NewQuoteResponse(q))
	}

	return out
}

// ScreenResponse is a list screen's state.
type ScreenResponse struct {
	Screen string          `json:"screen"`
	State  string          `json:"state"`
	Loaded bool            `json:"loaded"`
	Daily  *QuoteResponse  `json:"daily,omitempty"`
	Quotes []QuoteResponse `json:"quotes"`
}

// NewFeedResponse converts the home screen snapshot.
func NewFeedResponse(snap app.Snapshot[app.Feed]) ScreenResponse {
	resp := ScreenResponse{
		Screen: "feed",
		State:  string(snap.State),
		Loaded: snap.Loaded,
		Quotes: NewQuoteResponses(snap.Data.Quotes),
	}

	if snap.Data.Daily != nil {
		daily := NewQuoteResponse(*snap.Data.Daily)
		resp.Daily = &daily
	}

	return resp
}

// NewFavoritesResponse converts the favorites screen snapshot.
func NewFavoritesResponse(snap app.Snapshot[[]domain.Quote]) ScreenResponse {
	return ScreenResponse{
		Screen: "favorites",
		State:  string(snap.State),
		Loaded: snap.Loaded,
		Quotes: NewQuoteResponses(snap.Data),
	}
}

// FilterResponse is a search filter.
type FilterResponse struct {
	Term     string `json:"term"`
	Category string `json:"category"`
}

func newFilterResponse(f domain.Filter) FilterResponse {
	f = f.Normalized()
	return FilterResponse{Term: f.Term, Category: string(f.Category)}
}

// SearchResponse is the search screen's state.
type SearchResponse struct {
	Screen       string          `json:"screen"`
	State        string          `json:"state"`
	Loaded       bool            `json:"loaded"`
	Filter       FilterResponse  `json:"filter"`
	ResultFilter FilterResponse  `json:"resultFilter"`
	Results      []QuoteResponse `json:"results"`
	Seq          uint64          `json:"seq"`
	Pending      bool            `json:"pending"`
}

// NewSearchResponse converts the search screen view.
func NewSearchResponse(v app.SearchView) SearchResponse {
	return SearchResponse{
		Screen:       "search",
		State:        string(v.State),
		Loaded:       v.Loaded,
		Filter:       newFilterResponse(v.Filter),
		ResultFilter: newFilterResponse(v.ResultFilter),
		Results:      NewQuoteResponses(v.Results),
		Seq:          v.Seq,
		Pending:      v.Pending,
	}
}

// FilterRequest edits the search filter. Omitted fields keep their value.
type FilterRequest struct {
	Term     *string `json:"term" validate:"omitempty,max=200"`
	Category *string `json:"category" validate:"omitempty,category"`
}

// ToggleResponse reports the local outcome of a favorite toggle, and the
// remote one when the caller waited for it.
type ToggleResponse struct {
	QuoteID    string `json:"quoteId"`
	IsFavorite bool   `json:"isFavorite"`
	Settled    bool   `json:"settled"`
}

// SignInRequest is the sign-in form. Empty fields are rejected by the
// session manager with a user-facing message.
type SignInRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=256"`
}

// ToCredentials converts the form.
func (r SignInRequest) ToCredentials() domain.Credentials {
	return domain.Credentials{Email: r.Email, Password: r.Password}
}

// SignUpRequest is the sign-up form.
type SignUpRequest struct {
	FullName        string `json:"fullName" validate:"max=200"`
	Email           string `json:"email" validate:"max=254"`
	Password        string `json:"password" validate:"max=256"`
	ConfirmPassword string `json:"confirmPassword" validate:"max=256"`
}

// ToDomain converts the form.
func (r SignUpRequest) ToDomain() domain.SignUpRequest {
	return domain.SignUpRequest{
		FullName:        r.FullName,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}

// UserResponse is the signed-in user.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
}

// SessionResponse describes the session without exposing its tokens.
type SessionResponse struct {
	SignedIn  bool          `json:"signedIn"`
	User      *UserResponse `json:"user,omitempty"`
	ExpiresAt *time.Time    `json:"expiresAt,omitempty"`
}

// NewSessionResponse converts a session; nil means signed out.
func NewSessionResponse(s *domain.Session) SessionResponse {
	if s == nil {
		return SessionResponse{}
	}

	resp := SessionResponse{
		SignedIn: true,
		User: &UserResponse{
			ID:       s.User.ID,
			Email:    s.User.Email,
			FullName: s.User.FullName,
		},
	}

	if exp := app.ExpiresAt(s); !exp.IsZero() {
		resp.ExpiresAt = &exp
	}

	return resp
}

// SignUpResponse is the sign-up outcome.
type SignUpResponse struct {
	PendingVerification bool            `json:"pendingVerification"`
	Message             string          `json:"message,omitempty"`
	Session             SessionResponse `json:"session"`
}

// NoticeResponse is one user-facing notice.
type NoticeResponse struct {
	ID      uint64    `json:"id"`
	Kind    string    `json:"kind"`
	Title   string    `json:"title,omitempty"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// NoticesResponse carries drained notices.
type NoticesResponse struct {
	Notices []NoticeResponse `json:"notices"`
}

// NewNoticesResponse converts notices. The list is never nil.
func NewNoticesResponse(notices []domain.Notice) NoticesResponse {
	out := make([]NoticeResponse, 0, len(notices))
	for _, n := range notices {
		out = append(out, NoticeResponse{
			ID:      n.ID,
			Kind:    string(n.Kind),
			Title:   n.Title,
			Message: n.Message,
			At:      n.At,
		})
	}

	return NoticesResponse{Notices: out}
}

// ReminderResponse reports whether the daily reminder is scheduled.
type ReminderResponse struct {
	Scheduled bool `json:"scheduled"`
}

// ShareResponse carries the shared card's path.
type ShareResponse struct {
	QuoteID string `json:"quoteId"`
	Path    string `json:"path"`
}

// CategoriesResponse lists the category selector labels in display order.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// NewCategoriesResponse lists domain.Categories.
func NewCategoriesResponse() CategoriesResponse {
	cats := domain.Categories()

	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, string(c))
	}

	return CategoriesResponse{Categories: out}
}
