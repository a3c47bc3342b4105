package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/contracts"
	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/domain"
)

// ActionFunc runs one write operation for a decoded payload.
type ActionFunc func(ctx context.Context, payload json.RawMessage) (domain.Outcome, error)

// Registry maps action kinds to the write operations of one aggregate type.
// It is read-only after construction.
type Registry struct {
	aggregate domain.AggregateType
	actions   contracts.Actions
}

func New(aggregate domain.AggregateType, actions contracts.Actions) *Registry {
	return &Registry{aggregate: aggregate, actions: actions}
}

func (r *Registry) Aggregate() domain.AggregateType {
	return r.aggregate
}

// Lookup is exhaustive over domain.ActionKind. The error branch is only
// reachable with a kind that bypassed envelope decoding.
func (r *Registry) Lookup(kind domain.ActionKind) (ActionFunc, error) {
	switch kind {
	case domain.ActionCreate:
		return r.actions.Create, nil
	case domain.ActionUpdate:
		return r.actions.Update, nil
	case domain.ActionDelete:
		return r.actions.Delete, nil
	}
	return nil, fmt.Errorf("%w: %q for %s", domain.ErrUnknownAction, kind, r.aggregate)
}

// Dispatch routes an envelope to its write operation.
func (r *Registry) Dispatch(ctx context.Context, env domain.Envelope) (domain.Outcome, error) {
	fn, err := r.Lookup(env.Action)
	if err != nil {
		return 0, err
	}
	return fn(ctx, env.Payload)
}
