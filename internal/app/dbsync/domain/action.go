package domain

import (
	"encoding/json"
	"fmt"
)

// ActionKind is the closed set of write operations an outbox event can carry.
type ActionKind string

const (
	ActionCreate ActionKind = "create"
	ActionUpdate ActionKind = "update"
	ActionDelete ActionKind = "delete"
)

// ParseActionKind returns ErrUnknownAction for anything but create, update or delete.
func ParseActionKind(s string) (ActionKind, error) {
	switch k := ActionKind(s); k {
	case ActionCreate, ActionUpdate, ActionDelete:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

func (k ActionKind) String() string {
	return string(k)
}

// UnmarshalJSON rejects unknown kinds so a decoded envelope always carries a valid one.
func (k *ActionKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: event_type must be a string", ErrUnknownAction)
	}
	parsed, err := ParseActionKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
