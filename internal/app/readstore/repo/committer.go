package repo

import (
	"context"

	"github.com/murkotick/catalog-sync-worker/internal/pkg/committer"
)

// Committer applies a mutation plan atomically. *committer.Adapter is the
// production implementation.
type Committer interface {
	Apply(ctx context.Context, plan *committer.Plan) error
}
