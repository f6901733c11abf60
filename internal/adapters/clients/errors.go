// Package clients provides HTTP client adapters for downstream services.
package clients

import "errors"

// Transport-level failures. The acl package translates them into domain
// errors before they reach the core.
var (
	// ErrCircuitOpen means the backend breaker refused the call.
	ErrCircuitOpen = errors.New("backend circuit open")

	// ErrMaxRetriesExceeded wraps the last attempt's error once every
	// permitted attempt has failed.
	ErrMaxRetriesExceeded = errors.New("backend attempts exhausted")
)
