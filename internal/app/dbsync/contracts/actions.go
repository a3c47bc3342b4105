package contracts

import (
	"context"
	"encoding/json"

	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/domain"
)

// Actions are the three write operations for the worker's aggregate type.
// Each one decodes its payload, reconciles versions and reports the outcome.
// Reconciliation results are outcomes, not errors.
type Actions interface {
	Create(ctx context.Context, payload json.RawMessage) (domain.Outcome, error)
	Update(ctx context.Context, payload json.RawMessage) (domain.Outcome, error)
	Delete(ctx context.Context, payload json.RawMessage) (domain.Outcome, error)
}
