package contracts

import (
	"context"

	"github.com/murkotick/catalog-sync-worker/internal/broker"
)

// Broker is what the sync worker needs from the message broker.
type Broker interface {
	Connect(ctx context.Context) error
	Consume(ctx context.Context, handler broker.Handler) error
	Publish(ctx context.Context, msg broker.Message, path broker.Path) error
	Disconnect() error
}
