package utils

import "errors"

// Error taxonomy shared by services and controllers. Services return these
// (possibly wrapped); controllers translate them into HTTP statuses.
var (
	// ErrInvalidCredentials is safe to show to end users and does not
	// enable account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailAlreadyExists = errors.New("email already in use")

	ErrUnauthenticated = errors.New("login required")
	ErrForbidden       = errors.New("insufficient role")
	ErrNotFound        = errors.New("not found")

	// ErrEditNotAllowed covers every comment-edit refusal: missing document,
	// wrong author, or expired edit window. Collapsing them avoids leaking
	// which condition failed.
	ErrEditNotAllowed = errors.New("comments can only be edited by their author within 24 hours")

	// ErrExternalService marks failures of the comment store or object
	// store; callers should present these as retryable.
	ErrExternalService = errors.New("external service unavailable")
)
