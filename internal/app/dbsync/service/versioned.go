package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/contracts"
	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/domain"
)

// Versioned applies create, update and delete requests for one aggregate type
// to its read store, guarded by version reconciliation.
type Versioned[C, U, D domain.WriteRequest] struct {
	store contracts.Store[C, U]
	newID func() string
}

var _ contracts.Actions = (*Versioned[domain.ProductCreate, domain.ProductUpdate, domain.ProductDelete])(nil)

// NewVersioned builds the service. newID may be nil, in which case ids for
// creates without one are random UUIDs.
func NewVersioned[C, U, D domain.WriteRequest](store contracts.Store[C, U], newID func() string) *Versioned[C, U, D] {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Versioned[C, U, D]{store: store, newID: newID}
}

// NewProductService wires the product request types.
func NewProductService(store contracts.Store[domain.ProductCreate, domain.ProductUpdate]) *Versioned[domain.ProductCreate, domain.ProductUpdate, domain.ProductDelete] {
	return NewVersioned[domain.ProductCreate, domain.ProductUpdate, domain.ProductDelete](store, nil)
}

// NewProductTypeService wires the product type request types.
func NewProductTypeService(store contracts.Store[domain.ProductTypeCreate, domain.ProductTypeUpdate]) *Versioned[domain.ProductTypeCreate, domain.ProductTypeUpdate, domain.ProductTypeDelete] {
	return NewVersioned[domain.ProductTypeCreate, domain.ProductTypeUpdate, domain.ProductTypeDelete](store, nil)
}

// Create inserts the aggregate at the declared version. A create for an id
// that already exists is a redelivery and is skipped.
func (s *Versioned[C, U, D]) Create(ctx context.Context, payload json.RawMessage) (domain.Outcome, error) {
	req, err := domain.DecodeRequest[C](payload)
	if err != nil {
		return 0, err
	}

	id := req.AggregateID()
	if id == "" {
		id = s.newID()
	} else {
		_, err := s.store.FetchCurrentVersion(ctx, id)
		switch {
		case err == nil:
			return domain.Skipped, nil
		case !errors.Is(err, domain.ErrNotFound):
			return 0, fmt.Errorf("fetch version of %s: %w", id, err)
		}
	}

	if err := s.store.Create(ctx, id, req); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return domain.Skipped, nil
		}
		return 0, fmt.Errorf("create %s: %w", id, err)
	}
	return domain.Applied, nil
}

func (s *Versioned[C, U, D]) Update(ctx context.Context, payload json.RawMessage) (domain.Outcome, error) {
	req, err := domain.DecodeRequest[U](payload)
	if err != nil {
		return 0, err
	}

	id := req.AggregateID()
	outcome, err := s.reconcile(ctx, id, req.DeclaredVersion())
	if err != nil || outcome != domain.Applied {
		return outcome, err
	}

	if err := s.store.Update(ctx, id, req); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Delayed, nil
		}
		return 0, fmt.Errorf("update %s: %w", id, err)
	}
	return domain.Applied, nil
}

func (s *Versioned[C, U, D]) Delete(ctx context.Context, payload json.RawMessage) (domain.Outcome, error) {
	req, err := domain.DecodeRequest[D](payload)
	if err != nil {
		return 0, err
	}

	id := req.AggregateID()
	outcome, err := s.reconcile(ctx, id, req.DeclaredVersion())
	if err != nil || outcome != domain.Applied {
		return outcome, err
	}

	if err := s.store.Delete(ctx, id, req.DeclaredVersion()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Delayed, nil
		}
		return 0, fmt.Errorf("delete %s: %w", id, err)
	}
	return domain.Applied, nil
}

// reconcile returns Applied when the write may proceed. A missing aggregate
// counts as premature: its create may still be on the way.
func (s *Versioned[C, U, D]) reconcile(ctx context.Context, id string, declared int64) (domain.Outcome, error) {
	current, err := s.store.FetchCurrentVersion(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Delayed, nil
	}
	if err != nil {
		return 0, fmt.Errorf("fetch version of %s: %w", id, err)
	}
	return domain.OutcomeOf(domain.Reconcile(current, declared)), nil
}
