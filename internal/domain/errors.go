package domain

import "errors"

// Sentinel errors forming the closed failure taxonomy shared by both
// resources. Repo and service functions wrap these with fmt.Errorf("...: %w")
// and callers check them with errors.Is; the handler layer maps each one to
// exactly one HTTP status, so companies and invoices fail identically for
// identical condition classes.
var (
	// ErrNotFound is returned when the target entity (company code or
	// invoice id) does not exist. Handlers map this to HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrInvalid is returned for missing or malformed input and for
	// referential violations (an invoice naming a company that does not
	// exist). Handlers map this to HTTP 400.
	ErrInvalid = errors.New("invalid request")

	// ErrDuplicate is returned when a create hits a uniqueness constraint,
	// such as a second company with an existing code. Handlers map this to
	// HTTP 400.
	ErrDuplicate = errors.New("already exists")

	// ErrUnauthorized and ErrForbidden are reserved for a future auth layer.
	// No operation returns them today; the handler error writer maps them
	// anyway so the taxonomy stays complete.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
