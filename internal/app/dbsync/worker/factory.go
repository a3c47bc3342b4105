package worker

import (
	"log/slog"

	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/contracts"
	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/domain"
	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/registry"
	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/service"
)

// Stores bundles the read-store adapters a worker may need.
type Stores struct {
	Products     contracts.Store[domain.ProductCreate, domain.ProductUpdate]
	ProductTypes contracts.Store[domain.ProductTypeCreate, domain.ProductTypeUpdate]
}

// Factory builds the worker for a WORKER_TYPE value.
type Factory struct {
	broker contracts.Broker
	stores Stores
	log    *slog.Logger
}

func NewFactory(b contracts.Broker, stores Stores, log *slog.Logger) *Factory {
	if log == nil {
		log = slog.Default()
	}
	return &Factory{broker: b, stores: stores, log: log}
}

// Create returns domain.ErrUnknownAggregateType for anything but product and
// producttype.
func (f *Factory) Create(workerType string) (*Worker, error) {
	aggregate, err := domain.ParseAggregateType(workerType)
	if err != nil {
		return nil, err
	}

	var actions contracts.Actions
	switch aggregate {
	case domain.AggregateProduct:
		actions = service.NewProductService(f.stores.Products)
	case domain.AggregateProductType:
		actions = service.NewProductTypeService(f.stores.ProductTypes)
	}

	return New(f.broker, registry.New(aggregate, actions), f.log.With("aggregate", aggregate.String())), nil
}
