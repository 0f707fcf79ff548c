package shared

import "errors"

// Error taxonomy shared by all aggregate services. Each package wraps these
// with its own context so callers can match with errors.Is.
var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness violation such as a duplicate property code.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation indicates malformed input to an aggregate constructor or mutator.
	ErrValidation = errors.New("validation failed")
	// ErrIllegalTransition indicates a no-op or out-of-order status change.
	ErrIllegalTransition = errors.New("illegal state transition")
	// ErrUnauthorized indicates the acting landlord does not own the resource chain.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStateConflict indicates a concurrent modification lost the race,
	// e.g. two tenancies competing for the same vacant unit.
	ErrStateConflict = errors.New("state conflict")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
