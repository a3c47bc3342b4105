package committer

import (
	"context"
	"errors"

	"cloud.google.com/go/spanner"
)

var errNoClient = errors.New("committer: spanner client is nil")

// Adapter applies plans with a single blind-write transaction.
type Adapter struct {
	client *spanner.Client
}

func NewAdapter(client *spanner.Client) *Adapter {
	return &Adapter{client: client}
}

// Apply commits every mutation of plan or none. Errors are returned as the
// Spanner client reports them so callers can inspect spanner.ErrCode.
func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	if a.client == nil {
		return errNoClient
	}

	var opts []spanner.ApplyOption
	if plan.Tag() != "" {
		opts = append(opts, spanner.TransactionTag(plan.Tag()))
	}
	_, err := a.client.Apply(ctx, plan.Mutations(), opts...)
	return err
}
