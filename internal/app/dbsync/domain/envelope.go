package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is the outbox event as it travels over the broker: the action kind
// plus the write request for one aggregate kind, still encoded.
type Envelope struct {
	Action  ActionKind      `json:"event_type"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeEnvelope parses a message body. Every failure wraps ErrInvalidEnvelope
// or ErrUnknownAction.
func DecodeEnvelope(body []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if errors.Is(err, ErrUnknownAction) {
			return Envelope{}, err
		}
		return Envelope{}, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	if env.Action == "" {
		return Envelope{}, fmt.Errorf("%w: event_type is required", ErrInvalidEnvelope)
	}
	p := bytes.TrimSpace(env.Payload)
	if len(p) == 0 || bytes.Equal(p, []byte("null")) {
		return Envelope{}, fmt.Errorf("%w: payload is required", ErrInvalidEnvelope)
	}
	return env, nil
}

// Encode is the inverse of DecodeEnvelope. Used by tests and tooling that
// produce events.
func (e Envelope) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// NewEnvelope marshals payload into an envelope for the given action.
func NewEnvelope(action ActionKind, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", action, err)
	}
	return Envelope{Action: action, Payload: raw}, nil
}
