// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
//   - The caller's session is passed explicitly; nil means anonymous
package ports

import (
	"context"

	"github.com/quotevault/quotevault/internal/domain"
)

// AuthProvider is the managed auth service.
type AuthProvider interface {
	// SignInWithPassword exchanges credentials for a session.
	// Returns domain.ErrUnauthenticated carrying the provider message on rejection.
	SignInWithPassword(ctx context.Context, creds domain.Credentials) (*domain.Session, error)

	// SignUp creates an account. A nil session with a nil error means the
	// account awaits email verification.
	SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.Session, error)

	// SignOut revokes the session's tokens.
	SignOut(ctx context.Context, session *domain.Session) error

	// GetUser returns the user behind the session's access token.
	GetUser(ctx context.Context, session *domain.Session) (*domain.User, error)

	// Refresh trades a refresh token for a new session.
	Refresh(ctx context.Context, refreshToken string) (*domain.Session, error)
}

// QuoteQuery is a search over the quotes collection.
type QuoteQuery struct {
	Filter domain.Filter
	Limit  int
}

// QuoteStore reads quotes.
type QuoteStore interface {
	// Search returns quotes matching the filter: category equality unless All,
	// case-insensitive content substring unless the term is empty.
	Search(ctx context.Context, session *domain.Session, q QuoteQuery) ([]domain.Quote, error)

	// Latest returns the most recently created quote, or nil if there are none.
	Latest(ctx context.Context, session *domain.Session) (*domain.Quote, error)

	// Random invokes the server-side random selection procedure.
	Random(ctx context.Context, session *domain.Session) ([]domain.Quote, error)
}

// FavoriteStore reads and mutates the favorite relation for the session's user.
type FavoriteStore interface {
	// FavoriteIDs returns the IDs of every quote the user has favorited.
	FavoriteIDs(ctx context.Context, session *domain.Session) (map[string]struct{}, error)

	// ListFavorites returns the user's favorited quotes.
	ListFavorites(ctx context.Context, session *domain.Session) ([]domain.Quote, error)

	// AddFavorite inserts the (user, quote) relation.
	AddFavorite(ctx context.Context, session *domain.Session, quoteID string) error

	// RemoveFavorite deletes the (user, quote) relation.
	RemoveFavorite(ctx context.Context, session *domain.Session, quoteID string) error
}

// SessionStore persists the session between process runs.
type SessionStore interface {
	// Load returns the stored session, or nil if none is stored.
	Load(ctx context.Context) (*domain.Session, error)

	// Save replaces the stored session.
	Save(ctx context.Context, session *domain.Session) error

	// Clear removes the stored session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
