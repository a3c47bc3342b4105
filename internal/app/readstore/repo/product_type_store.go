package repo

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/contracts"
	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/domain"
	"github.com/murkotick/catalog-sync-worker/internal/models/m_product_type"
	"github.com/murkotick/catalog-sync-worker/internal/pkg/clock"
	"github.com/murkotick/catalog-sync-worker/internal/pkg/committer"
)

// ProductTypeStore writes the product_types read table.
type ProductTypeStore struct {
	client    *spanner.Client
	committer Committer
	clock     clock.Clock
}

var _ contracts.Store[domain.ProductTypeCreate, domain.ProductTypeUpdate] = (*ProductTypeStore)(nil)

func NewProductTypeStore(client *spanner.Client, cm Committer, clk clock.Clock) *ProductTypeStore {
	return &ProductTypeStore{client: client, committer: cm, clock: clk}
}

func (s *ProductTypeStore) FetchCurrentVersion(ctx context.Context, id string) (int64, error) {
	return fetchVersion(ctx, s.client, m_product_type.TableName, m_product_type.ColProductTypeID, id)
}

func (s *ProductTypeStore) Create(ctx context.Context, id string, req domain.ProductTypeCreate) error {
	values := m_product_type.BuildInsertMap(id, strings.TrimSpace(req.Name), req.Description,
		req.DeclaredVersion(), s.clock.Now().UTC())
	plan := committer.NewPlan("sync-producttype-create", m_product_type.InsertMutation(values))
	return mapError(s.committer.Apply(ctx, plan))
}

func (s *ProductTypeStore) Update(ctx context.Context, id string, req domain.ProductTypeUpdate) error {
	values := buildProductTypeUpdateValues(req, s.clock.Now())
	plan := committer.NewPlan("sync-producttype-update", m_product_type.UpdateMutation(id, values))
	return mapError(s.committer.Apply(ctx, plan))
}

func (s *ProductTypeStore) Delete(ctx context.Context, id string, version int64) error {
	values := m_product_type.BuildDeleteMap(version, s.clock.Now().UTC())
	plan := committer.NewPlan("sync-producttype-delete", m_product_type.UpdateMutation(id, values))
	return mapError(s.committer.Apply(ctx, plan))
}

func buildProductTypeUpdateValues(req domain.ProductTypeUpdate, now time.Time) map[string]interface{} {
	values := m_product_type.BuildUpdateMap(req.DeclaredVersion(), now.UTC())
	if req.Name != nil {
		values[m_product_type.ColName] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		values[m_product_type.ColDescription] = *req.Description
	}
	return values
}
