package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// WriteRequest is implemented by every create, update and delete payload.
type WriteRequest interface {
	// Validate checks required fields; entity_version is always required.
	Validate() error
	// AggregateID is the target id; empty on a create that lets the store assign one.
	AggregateID() string
	// DeclaredVersion is the entity_version the request expects to produce.
	// Only meaningful after Validate succeeded.
	DeclaredVersion() int64
}

// DecodeRequest unmarshals and validates a payload. Type mismatches (e.g. a
// string entity_version) surface as ErrInvalidPayload.
func DecodeRequest[T WriteRequest](raw json.RawMessage) (T, error) {
	var req T
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

func checkVersion(v *int64) error {
	if v == nil {
		return ErrMissingVersion
	}
	if *v < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeVersion, *v)
	}
	return nil
}

func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	return checkUUID("id", id)
}

// checkOptionalID accepts an absent or blank id, which the store then assigns.
func checkOptionalID(id *string) error {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	return checkUUID("id", *id)
}

// checkUUID rejects anything uuid.Parse does not accept. Braced and urn forms
// pass here and are shortened by CanonicalID.
func checkUUID(field, id string) error {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("%w: %s %q", ErrInvalidID, field, id)
	}
	return nil
}

// CanonicalID renders a valid id in the 36-character lowercase form the read
// store keys on. Invalid input is returned trimmed.
func CanonicalID(id string) string {
	id = strings.TrimSpace(id)
	parsed, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return parsed.String()
}

func derefVersion(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return CanonicalID(*s)
}

func requireField(name string, ok bool) error {
	if !ok {
		return fmt.Errorf("%w: %s is required", ErrInvalidPayload, name)
	}
	return nil
}
