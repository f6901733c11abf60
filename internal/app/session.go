package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/platform/logging"
	"github.com/quotevault/quotevault/internal/ports"
)

// Session messages shown to the user.
const (
	MsgMissingCredentials  = "Please enter email and password"
	MsgMissingSignUpFields = "Please fill in all fields"
	MsgPasswordMismatch    = "Passwords do not match"
	MsgVerifyEmail         = "Check your email to verify account."
	MsgLoggedOut           = "Logged out successfully"
)

// expirySkew treats a token as expired this long before its exp.
const expirySkew = 10 * time.Second

// SessionSource yields the current session, or nil when signed out.
type SessionSource interface {
	Current(ctx context.Context) (*domain.Session, error)
}

// SignUpResult is the outcome of a sign-up. Session is nil when the account
// awaits email verification.
type SignUpResult struct {
	Session             *domain.Session
	PendingVerification bool
}

// SessionManagerConfig holds the manager's dependencies.
type SessionManagerConfig struct {
	Auth     ports.AuthProvider
	Store    ports.SessionStore
	Notifier Notifier
	Logger   *slog.Logger
}

// SessionManager owns the signed-in session. It validates credentials before
// any network call, persists the session through a SessionStore, and
// refreshes an expired access token once before giving up on the session.
type SessionManager struct {
	auth     ports.AuthProvider
	store    ports.SessionStore
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	session *domain.Session
	loaded  bool
}

var _ SessionSource = (*SessionManager)(nil)

// NewSessionManager creates a session manager.
// Panics if Auth or Store is nil.
func NewSessionManager(cfg SessionManagerConfig) *SessionManager {
	if cfg.Auth == nil {
		panic("SessionManager: Auth is required")
	}

	if cfg.Store == nil {
		panic("SessionManager: Store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionManager{
		auth:     cfg.Auth,
		store:    cfg.Store,
		notifier: cfg.Notifier,
		logger:   logger.With(slog.String("component", "app.SessionManager")),
		now:      time.Now,
	}
}

// SignIn exchanges email and password for a session.
func (m *SessionManager) SignIn(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		m.notify(ctx, domain.NoticeError, "Error", MsgMissingCredentials)
		return nil, domain.NewValidationError("", MsgMissingCredentials)
	}

	session, err := m.auth.SignInWithPassword(ctx, creds)
	if err != nil {
		m.logger.WarnContext(ctx, "sign in failed", slog.Any("error", err))
		m.notify(ctx, domain.NoticeError, "Login Failed", domain.UserMessage(err, "Could not sign in."))

		return nil, err
	}

	m.set(ctx, session)
	m.logger.InfoContext(ctx, "signed in", slog.String("user_id", session.UserID()))

	return session, nil
}

// SignUp creates an account and signs in when no verification is pending.
func (m *SessionManager) SignUp(ctx context.Context, req domain.SignUpRequest) (*SignUpResult, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)

	if req.FullName == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		m.notify(ctx, domain.NoticeError, "Error", MsgMissingSignUpFields)
		return nil, domain.NewValidationError("", MsgMissingSignUpFields)
	}

	if req.Password != req.ConfirmPassword {
		m.notify(ctx, domain.NoticeError, "Error", MsgPasswordMismatch)
		return nil, domain.NewValidationError("confirm_password", MsgPasswordMismatch)
	}

	session, err := m.auth.SignUp(ctx, req)
	if err != nil {
		m.logger.WarnContext(ctx, "sign up failed", slog.Any("error", err))
		m.notify(ctx, domain.NoticeError, "Signup Failed", domain.UserMessage(err, "Could not sign up."))

		return nil, err
	}

	if session == nil {
		m.notify(ctx, domain.NoticeSuccess, "Success", MsgVerifyEmail)
		return &SignUpResult{PendingVerification: true}, nil
	}

	m.set(ctx, session)
	m.logger.InfoContext(ctx, "signed up", slog.String("user_id", session.UserID()))

	return &SignUpResult{Session: session}, nil
}

// SignOut revokes the session remotely and forgets it locally. A remote
// failure keeps the user signed in.
func (m *SessionManager) SignOut(ctx context.Context) error {
	session, err := m.cached(ctx)
	if err != nil {
		return err
	}

	if err := m.auth.SignOut(ctx, session); err != nil {
		m.logger.WarnContext(ctx, "sign out failed", slog.Any("error", err))
		m.notify(ctx, domain.NoticeError, "Error", domain.UserMessage(err, "Could not sign out."))

		return err
	}

	m.clear(ctx)
	m.notify(ctx, domain.NoticeSuccess, MsgLoggedOut, "")

	return nil
}

// Current returns the usable session or nil. An expired access token is
// refreshed once; a session that cannot be refreshed is discarded.
func (m *SessionManager) Current(ctx context.Context) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.loadLocked(ctx); err != nil {
		return nil, err
	}

	s := m.session
	if s == nil || !m.expired(s) {
		return s, nil
	}

	logger := logging.FromContextOr(ctx, m.logger).With(slog.String("user_id", s.UserID()))

	if s.RefreshToken == "" {
		logger.InfoContext(ctx, "session expired without refresh token")
		m.clearLocked(ctx)

		return nil, nil
	}

	refreshed, err := m.auth.Refresh(ctx, s.RefreshToken)
	if err != nil {
		logger.WarnContext(ctx, "session refresh failed, signing out", slog.Any("error", err))
		m.clearLocked(ctx)

		return nil, nil
	}

	logger.DebugContext(ctx, "session refreshed")
	m.setLocked(ctx, refreshed)

	return refreshed, nil
}

// User returns the provider's view of the current user, or nil when signed out.
func (m *SessionManager) User(ctx context.Context) (*domain.User, error) {
	s, err := m.Current(ctx)
	if err != nil || s == nil {
		return nil, err
	}

	u, err := m.auth.GetUser(ctx, s)
	if domain.IsUnauthenticated(err) {
		return nil, nil
	}

	return u, err
}

// ExpiresAt returns when the session's access token expires: the recorded
// expiry, else the token's exp claim. Zero means unknown.
func ExpiresAt(s *domain.Session) time.Time {
	if s == nil {
		return time.Time{}
	}

	if !s.ExpiresAt.IsZero() {
		return s.ExpiresAt
	}

	return tokenExpiry(s.AccessToken)
}

// tokenExpiry reads the exp claim without verifying the signature.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}

	return claims.ExpiresAt.Time
}

func (m *SessionManager) expired(s *domain.Session) bool {
	exp := ExpiresAt(s)
	if exp.IsZero() {
		return false
	}

	return !m.now().Add(expirySkew).Before(exp)
}

func (m *SessionManager) cached(ctx context.Context) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.loadLocked(ctx); err != nil {
		return nil, err
	}

	return m.session, nil
}

func (m *SessionManager) loadLocked(ctx context.Context) error {
	if m.loaded {
		return nil
	}

	s, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	m.session = s
	m.loaded = true

	return nil
}

func (m *SessionManager) set(ctx context.Context, s *domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setLocked(ctx, s)
}

func (m *SessionManager) setLocked(ctx context.Context, s *domain.Session) {
	m.session = s
	m.loaded = true

	// The in-memory session stays usable when persisting fails.
	if err := m.store.Save(ctx, s); err != nil {
		m.logger.ErrorContext(ctx, "saving session", slog.Any("error", err))
	}
}

func (m *SessionManager) clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearLocked(ctx)
}

func (m *SessionManager) clearLocked(ctx context.Context) {
	m.session = nil
	m.loaded = true

	if err := m.store.Clear(ctx); err != nil {
		m.logger.ErrorContext(ctx, "clearing session", slog.Any("error", err))
	}
}

func (m *SessionManager) notify(ctx context.Context, kind domain.NoticeKind, title, message string) {
	if m.notifier != nil {
		m.notifier.Notify(ctx, kind, title, message)
	}
}
