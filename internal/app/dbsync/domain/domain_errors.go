package domain

import "errors"

// Validation faults. A message failing with one of these is acknowledged and
// dropped; waiting will never make it valid.
var (
	// ErrInvalidEnvelope indicates the message body is not a well-formed outbox event.
	ErrInvalidEnvelope = errors.New("sync: invalid outbox envelope")

	// ErrUnknownAction indicates an event_type outside create/update/delete.
	ErrUnknownAction = errors.New("sync: unknown action kind")

	// ErrInvalidPayload indicates the payload does not match the aggregate's write request.
	ErrInvalidPayload = errors.New("sync: invalid payload")

	// ErrMissingVersion indicates a write request without entity_version.
	ErrMissingVersion = errors.New("sync: entity_version is required")

	// ErrNegativeVersion indicates a write request with entity_version < 0.
	ErrNegativeVersion = errors.New("sync: entity_version must be >= 0")

	// ErrMissingID indicates an update or delete request without the aggregate id.
	ErrMissingID = errors.New("sync: id is required")

	// ErrInvalidID indicates an aggregate or reference id that is not a UUID.
	ErrInvalidID = errors.New("sync: id must be a UUID")
)

// Store faults reported by read-store adapters.
var (
	// ErrNotFound indicates the target aggregate does not exist (yet).
	ErrNotFound = errors.New("sync: aggregate not found")

	// ErrAlreadyExists indicates a create for an aggregate id that is already stored.
	ErrAlreadyExists = errors.New("sync: aggregate already exists")

	// ErrRejected indicates the store refused the write for good (bad argument,
	// failed precondition, out of range). Retrying cannot help.
	ErrRejected = errors.New("sync: write rejected by store")
)

// IsValidation reports whether err is a non-retryable validation fault.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidEnvelope),
		errors.Is(err, ErrUnknownAction),
		errors.Is(err, ErrInvalidPayload),
		errors.Is(err, ErrMissingVersion),
		errors.Is(err, ErrNegativeVersion),
		errors.Is(err, ErrMissingID),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrRejected):
		return true
	}
	return false
}
