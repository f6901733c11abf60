// Package domain contains the quote-browsing entities and errors.
// Domain errors describe what went wrong for the user, not how the
// backend or the HTTP layer reported it. Adapters map them outward.
package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every typed error below unwraps to exactly one of these, so
// callers branch with errors.Is or the Is helpers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a state conflict such as a duplicate favorite
	// or a toggle that is already in flight.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates required input is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated indicates there is no usable session, or the auth
	// provider rejected the credentials.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates the backend refused the operation for this user.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates the backend or network could not serve the request.
	ErrUnavailable = errors.New("unavailable")

	// ErrUnsupported indicates the running platform lacks a capability.
	ErrUnsupported = errors.New("unsupported")
)

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

type ConflictError struct {
	Entity string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// ValidationError is a rejected input. Message is shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UnauthenticatedError carries the auth provider's message, if any.
type UnauthenticatedError struct {
	Reason string
}

func (e *UnauthenticatedError) Error() string {
	if e.Reason != "" {
		return "unauthenticated: " + e.Reason
	}

	return "unauthenticated"
}

func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}

func NewUnauthenticatedError(reason string) error {
	return &UnauthenticatedError{Reason: reason}
}

type ForbiddenError struct {
	Operation string
	Reason    string
}

func (e *ForbiddenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("operation %q forbidden: %s", e.Operation, e.Reason)
	}

	return fmt.Sprintf("operation %q forbidden", e.Operation)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

// UnavailableError names the service that could not be reached.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// UnsupportedError names the capability missing on a platform.
type UnsupportedError struct {
	Capability string
	Platform   string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s not supported on %s", e.Capability, e.Platform)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

func NewUnsupportedError(capability, platform string) error {
	return &UnsupportedError{Capability: capability, Platform: platform}
}

// IsNotFound reports whether err is an entity that does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnavailable reports whether err is a backend or network failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

// UserMessage returns the text a notice should show for err.
// Validation and provider messages pass through; everything else gets fallback.
func UserMessage(err error, fallback string) string {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}

	var unauth *UnauthenticatedError
	if errors.As(err, &unauth) && unauth.Reason != "" {
		return unauth.Reason
	}

	return fallback
}
