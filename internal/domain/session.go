package domain

import "time"

// User is the authenticated account as reported by the auth provider.
type User struct {
	ID       string
	Email    string
	FullName string
}

// Session holds the current user's tokens. A nil *Session means "not logged in".
type Session struct {
	User         User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// UserID returns the session's user identifier, or "" for a nil session.
func (s *Session) UserID() string {
	if s == nil {
		return ""
	}

	return s.User.ID
}

// Expired reports whether the access token is past its expiry at now.
// A zero ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}

	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Credentials are the email/password pair for sign-in.
type Credentials struct {
	Email    string
	Password string
}

// SignUpRequest is the sign-up form.
type SignUpRequest struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}
