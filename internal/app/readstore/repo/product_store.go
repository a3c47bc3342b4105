package repo

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/contracts"
	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/domain"
	"github.com/murkotick/catalog-sync-worker/internal/models/m_product"
	"github.com/murkotick/catalog-sync-worker/internal/pkg/clock"
	"github.com/murkotick/catalog-sync-worker/internal/pkg/committer"
)

// ProductStore writes the products read table.
type ProductStore struct {
	client    *spanner.Client
	committer Committer
	clock     clock.Clock
}

var _ contracts.Store[domain.ProductCreate, domain.ProductUpdate] = (*ProductStore)(nil)

func NewProductStore(client *spanner.Client, cm Committer, clk clock.Clock) *ProductStore {
	return &ProductStore{client: client, committer: cm, clock: clk}
}

func (s *ProductStore) FetchCurrentVersion(ctx context.Context, id string) (int64, error) {
	return fetchVersion(ctx, s.client, m_product.TableName, m_product.ColProductID, id)
}

func (s *ProductStore) Create(ctx context.Context, id string, req domain.ProductCreate) error {
	values := buildProductInsertValues(id, req, s.clock.Now())
	plan := committer.NewPlan("sync-product-create", m_product.InsertMutation(values))
	return mapError(s.committer.Apply(ctx, plan))
}

func (s *ProductStore) Update(ctx context.Context, id string, req domain.ProductUpdate) error {
	values := buildProductUpdateValues(req, s.clock.Now())
	plan := committer.NewPlan("sync-product-update", m_product.UpdateMutation(id, values))
	return mapError(s.committer.Apply(ctx, plan))
}

func (s *ProductStore) Delete(ctx context.Context, id string, version int64) error {
	values := m_product.BuildDeleteMap(version, s.clock.Now())
	plan := committer.NewPlan("sync-product-delete", m_product.UpdateMutation(id, values))
	return mapError(s.committer.Apply(ctx, plan))
}

// buildProductInsertValues is split out so tests can inspect the row
// without going through spanner.Mutation.
func buildProductInsertValues(id string, req domain.ProductCreate, now time.Time) map[string]interface{} {
	var (
		quantity int64
		price    float64
	)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if req.Price != nil {
		price = *req.Price
	}
	return m_product.BuildInsertMap(id, strings.TrimSpace(req.Name), domain.CanonicalID(req.ProductTypeID),
		quantity, price, req.DeclaredVersion(), now.UTC())
}

// buildProductUpdateValues writes only the fields present in req.
func buildProductUpdateValues(req domain.ProductUpdate, now time.Time) map[string]interface{} {
	values := m_product.BuildUpdateMap(req.DeclaredVersion(), now.UTC())

	if req.Name != nil {
		values[m_product.ColName] = strings.TrimSpace(*req.Name)
	}
	if req.ProductTypeID != nil {
		values[m_product.ColProductTypeID] = domain.CanonicalID(*req.ProductTypeID)
	}
	if req.Quantity != nil {
		values[m_product.ColQuantity] = *req.Quantity
	}
	if req.Price != nil {
		values[m_product.ColPrice] = *req.Price
	}
	return values
}
