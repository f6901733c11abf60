package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/quotevault/quotevault/internal/adapters/clients"
	"github.com/quotevault/quotevault/internal/domain"
)

// BaseAdapter provides common functionality for the backend adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
	anonKey     string
}

// NewBaseAdapter creates a new base adapter. anonKey is the project's public
// key, sent as the bearer when no session is present.
func NewBaseAdapter(client *clients.Client, serviceName, anonKey string) BaseAdapter {
	return BaseAdapter{
		client:      client,
		serviceName: serviceName,
		anonKey:     anonKey,
	}
}

// HeaderAPIKey carries the project's public key on every backend request.
const HeaderAPIKey = "apikey"

// APIKeyAuth returns a clients.Config AuthFunc that sets the apikey header.
func APIKeyAuth(anonKey string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set(HeaderAPIKey, anonKey)
	}
}

// ServiceName returns the name of the external service.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Breaker reports the shared backend breaker.
func (a *BaseAdapter) Breaker() clients.BreakerSnapshot {
	return a.client.Breaker()
}

// AuthHeader returns the headers that authorize a request as the session's
// user, or anonymously when session is nil.
func (a *BaseAdapter) AuthHeader(session *domain.Session) http.Header {
	token := a.anonKey
	if session != nil && session.AccessToken != "" {
		token = session.AccessToken
	}

	return http.Header{"Authorization": {"Bearer " + token}}
}

// DoRequest executes a request and handles error mapping.
// On success, returns the response (caller must close the body).
// On failure, returns a mapped domain error.
func (a *BaseAdapter) DoRequest(ctx context.Context, req *clients.Request, operation, entityID string) (*http.Response, error) {
	resp, err := a.client.Send(ctx, req)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation, entityID)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, a.serviceName, operation, entityID)
	}

	return resp, nil
}

// Exec executes a request whose response body is irrelevant.
func (a *BaseAdapter) Exec(ctx context.Context, req *clients.Request, operation, entityID string) error {
	resp, err := a.DoRequest(ctx, req, operation, entityID)
	if err != nil {
		return err
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.Body.Close()
}

// Fetch executes a request and decodes the JSON response into T.
func Fetch[T any](ctx context.Context, a *BaseAdapter, req *clients.Request, operation, entityID string) (*T, error) {
	resp, err := a.DoRequest(ctx, req, operation, entityID)
	if err != nil {
		return nil, err
	}

	out, err := DecodeResponse[T](resp.Body)
	if err != nil {
		return nil, domain.NewUnavailableError(a.serviceName, err.Error())
	}

	return out, nil
}

// DecodeResponse reads and decodes a JSON response body into the target type.
// Closes the body after reading.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, fmt.Errorf("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// ValidateRequired checks that a required field is not empty.
// Returns a domain.ValidationError if the field is empty.
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return domain.NewValidationError(fieldName, "is required")
	}

	return nil
}

// Translator is a function type that translates an external DTO to a domain type.
// The function should validate the external data and return a domain error
// if validation fails.
type Translator[External any, Domain any] func(ext *External) (*Domain, error)

// TranslateSlice applies a translator function to a slice of external DTOs.
// If any translation fails, returns the first error encountered.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, *translated)
	}

	return result, nil
}
