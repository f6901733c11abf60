package acl

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quotevault/quotevault/internal/adapters/clients"
	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/ports"
)

// Auth API paths.
const (
	tokenPath  = "/auth/v1/token"
	signUpPath = "/auth/v1/signup"
	logoutPath = "/auth/v1/logout"
	userPath   = "/auth/v1/user"
)

// AuthClient implements ports.AuthProvider against the backend's auth API.
type AuthClient struct {
	BaseAdapter
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.AuthProvider = (*AuthClient)(nil)

// NewAuthClient creates a new auth adapter.
func NewAuthClient(client *clients.Client, serviceName, anonKey string, logger *slog.Logger) *AuthClient {
	if logger == nil {
		logger = slog.Default()
	}

	if serviceName == "" {
		serviceName = "backend"
	}

	return &AuthClient{
		BaseAdapter: NewBaseAdapter(client, serviceName, anonKey),
		logger:      logger,
		now:         time.Now,
	}
}

// externalUser is the auth API's user object.
type externalUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

// externalSession is the auth API's token response. Sign-up answers the same
// shape when no verification is pending, or a bare user object otherwise.
type externalSession struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	ExpiresAt    int64         `json:"expires_at"`
	User         *externalUser `json:"user"`

	// Bare user fields, present when sign-up awaits verification.
	ID string `json:"id"`
}

type passwordGrant struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshGrant struct {
	RefreshToken string `json:"refresh_token"`
}

type signUpBody struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Data     map[string]string `json:"data,omitempty"`
}

// SignInWithPassword implements ports.AuthProvider.
func (a *AuthClient) SignInWithPassword(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	if err := ValidateRequired(creds.Email, "email"); err != nil {
		return nil, err
	}

	if err := ValidateRequired(creds.Password, "password"); err != nil {
		return nil, err
	}

	ext, err := a.fetchSession(ctx, &clients.Request{
		Method: http.MethodPost,
		Path:   tokenPath,
		Query:  url.Values{"grant_type": {"password"}},
		Header: a.AuthHeader(nil),
		Body:   passwordGrant{Email: strings.TrimSpace(creds.Email), Password: creds.Password},
	}, "sign in")
	if err != nil {
		return nil, err
	}

	return a.translateSession(ext)
}

// SignUp implements ports.AuthProvider.
func (a *AuthClient) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.Session, error) {
	body := signUpBody{Email: strings.TrimSpace(req.Email), Password: req.Password}
	if req.FullName != "" {
		body.Data = map[string]string{"full_name": req.FullName}
	}

	resp, err := a.DoRequest(ctx, &clients.Request{
		Method: http.MethodPost,
		Path:   signUpPath,
		Header: a.AuthHeader(nil),
		Body:   body,
	}, "sign up", "")
	if err != nil {
		return nil, err
	}

	ext, err := DecodeResponse[externalSession](resp.Body)
	if err != nil {
		return nil, domain.NewUnavailableError(a.ServiceName(), err.Error())
	}

	if ext.AccessToken == "" {
		a.logger.InfoContext(ctx, "sign up awaiting email verification", slog.String("user_id", ext.ID))
		return nil, nil
	}

	return a.translateSession(ext)
}

// SignOut implements ports.AuthProvider.
func (a *AuthClient) SignOut(ctx context.Context, session *domain.Session) error {
	if session == nil || session.AccessToken == "" {
		return nil
	}

	err := a.Exec(ctx, &clients.Request{
		Method: http.MethodPost,
		Path:   logoutPath,
		Header: a.AuthHeader(session),
	}, "sign out", "")

	// A token the server no longer knows is already signed out.
	if domain.IsUnauthenticated(err) || domain.IsNotFound(err) {
		return nil
	}

	return err
}

// GetUser implements ports.AuthProvider.
func (a *AuthClient) GetUser(ctx context.Context, session *domain.Session) (*domain.User, error) {
	if session == nil || session.AccessToken == "" {
		return nil, domain.NewUnauthenticatedError("")
	}

	ext, err := Fetch[externalUser](ctx, &a.BaseAdapter, &clients.Request{
		Method: http.MethodGet,
		Path:   userPath,
		Header: a.AuthHeader(session),
	}, "get user", "")
	if err != nil {
		return nil, asAuthRejection(err)
	}

	return translateUser(ext)
}

// Refresh implements ports.AuthProvider.
func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if refreshToken == "" {
		return nil, domain.NewUnauthenticatedError("no refresh token")
	}

	ext, err := a.fetchSession(ctx, &clients.Request{
		Method: http.MethodPost,
		Path:   tokenPath,
		Query:  url.Values{"grant_type": {"refresh_token"}},
		Header: a.AuthHeader(nil),
		Body:   refreshGrant{RefreshToken: refreshToken},
	}, "refresh session")
	if err != nil {
		return nil, err
	}

	return a.translateSession(ext)
}

func (a *AuthClient) fetchSession(ctx context.Context, req *clients.Request, operation string) (*externalSession, error) {
	ext, err := Fetch[externalSession](ctx, &a.BaseAdapter, req, operation, "")
	if err != nil {
		return nil, asAuthRejection(err)
	}

	return ext, nil
}

// asAuthRejection turns a 400 from a token endpoint ("Invalid login
// credentials") into an UnauthenticatedError carrying the provider message.
func asAuthRejection(err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return domain.NewUnauthenticatedError(ve.Message)
	}

	return err
}

func (a *AuthClient) translateSession(ext *externalSession) (*domain.Session, error) {
	if ext.AccessToken == "" {
		return nil, domain.NewUnavailableError(a.ServiceName(), "token response without access token")
	}

	if ext.User == nil {
		return nil, domain.NewUnavailableError(a.ServiceName(), "token response without user")
	}

	user, err := translateUser(ext.User)
	if err != nil {
		return nil, err
	}

	s := &domain.Session{
		User:         *user,
		AccessToken:  ext.AccessToken,
		RefreshToken: ext.RefreshToken,
	}

	switch {
	case ext.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(ext.ExpiresAt, 0)
	case ext.ExpiresIn > 0:
		s.ExpiresAt = a.now().Add(time.Duration(ext.ExpiresIn) * time.Second)
	}

	return s, nil
}

func translateUser(ext *externalUser) (*domain.User, error) {
	if err := ValidateRequired(ext.ID, "id"); err != nil {
		return nil, err
	}

	return &domain.User{
		ID:       ext.ID,
		Email:    ext.Email,
		FullName: ext.UserMetadata.FullName,
	}, nil
}
