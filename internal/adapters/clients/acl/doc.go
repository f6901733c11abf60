// Package acl provides the Anti-Corruption Layer between the managed backend
// and the domain.
//
// Two adapters live here:
//
//   - [QuoteClient] speaks the backend's data API (PostgREST dialect): quote
//     search, the latest quote in single-object mode, the get_random_quotes
//     procedure and the favorites relation. It implements ports.QuoteStore
//     and ports.FavoriteStore.
//   - [AuthClient] speaks the backend's auth API (GoTrue dialect): password
//     and refresh-token grants, sign-up, logout and the current user. It
//     implements ports.AuthProvider.
//
// Backend rows and token responses are unexported DTOs. They are validated
// and translated before anything leaves this package.
//
// # Error Handling Strategy
//
// Both APIs return errors as JSON bodies with codes. The ACL translates
// them, together with HTTP status codes and transport failures, into domain
// errors:
//   - 404, 406 and PGRST116 → [domain.ErrNotFound]
//   - 409 and 23505 → [domain.ErrConflict]
//   - 400/422 → [domain.ErrValidation] (token endpoints: [domain.ErrUnauthenticated])
//   - 401 and PGRST301 → [domain.ErrUnauthenticated]
//   - 403 and 42501 → [domain.ErrForbidden]
//   - 5xx/network → [domain.ErrUnavailable]
//
// Client-level errors ([clients.ErrCircuitOpen], [clients.ErrMaxRetriesExceeded])
// are also translated to [domain.ErrUnavailable] with appropriate context.
package acl
