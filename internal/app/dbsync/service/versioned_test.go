package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/contracts/mocks"
	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/domain"
)

type productStore = mocks.MockStore[domain.ProductCreate, domain.ProductUpdate]

func newProductService(t *testing.T) (*Versioned[domain.ProductCreate, domain.ProductUpdate, domain.ProductDelete], *productStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore[domain.ProductCreate, domain.ProductUpdate](ctrl)
	svc := NewVersioned[domain.ProductCreate, domain.ProductUpdate, domain.ProductDelete](store, func() string { return "generated-id" })
	return svc, store
}

func TestUpdate_Reconciliation(t *testing.T) {
	tests := []struct {
		name        string
		current     int64
		declared    string
		want        domain.Outcome
		expectWrite bool
	}{
		{"apply next version", 2, "3", domain.Applied, true},
		{"stale same version", 2, "2", domain.Skipped, false},
		{"premature gap", 2, "5", domain.Delayed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newProductService(t)
			ctx := context.Background()

			store.EXPECT().FetchCurrentVersion(gomock.Any(), "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11").Return(tt.current, nil)
			if tt.expectWrite {
				store.EXPECT().
					Update(gomock.Any(), "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, req domain.ProductUpdate) error {
						assert.Equal(t, int64(3), req.DeclaredVersion())
						return nil
					})
			} else {
				store.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			}

			got, err := svc.Update(ctx, json.RawMessage(`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","price":5,"entity_version":`+tt.declared+`}`))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdate_NotFoundIsDelayed(t *testing.T) {
	svc, store := newProductService(t)

	store.EXPECT().FetchCurrentVersion(gomock.Any(), "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11").Return(int64(0), domain.ErrNotFound)
	store.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	got, err := svc.Update(context.Background(), json.RawMessage(`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","entity_version":1}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Delayed, got)
}

func TestUpdate_RowVanishedIsDelayed(t *testing.T) {
	svc, store := newProductService(t)

	store.EXPECT().FetchCurrentVersion(gomock.Any(), "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11").Return(int64(0), nil)
	store.EXPECT().Update(gomock.Any(), "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11", gomock.Any()).Return(domain.ErrNotFound)

	got, err := svc.Update(context.Background(), json.RawMessage(`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","entity_version":1}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Delayed, got)
}

func TestUpdate_StoreFault(t *testing.T) {
	svc, store := newProductService(t)
	boom := errors.New("spanner unavailable")

	store.EXPECT().FetchCurrentVersion(gomock.Any(), "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11").Return(int64(0), boom)

	_, err := svc.Update(context.Background(), json.RawMessage(`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","entity_version":1}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, domain.IsValidation(err))
}

func TestActions_MissingVersionNeverReachesStore(t *testing.T) {
	svc, store := newProductService(t)
	ctx := context.Background()

	store.EXPECT().FetchCurrentVersion(gomock.Any(), gomock.Any()).Times(0)
	store.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	store.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	store.EXPECT().Delete(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Create(ctx, json.RawMessage(`{"name":"Lamp","product_type_id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22","quantity":1,"price":2}`))
	assert.ErrorIs(t, err, domain.ErrMissingVersion)

	_, err = svc.Update(ctx, json.RawMessage(`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","name":"Lamp"}`))
	assert.ErrorIs(t, err, domain.ErrMissingVersion)

	_, err = svc.Delete(ctx, json.RawMessage(`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11"}`))
	assert.ErrorIs(t, err, domain.ErrMissingVersion)
}

func TestCreate_GeneratesIDWhenAbsent(t *testing.T) {
	svc, store := newProductService(t)

	store.EXPECT().FetchCurrentVersion(gomock.Any(), gomock.Any()).Times(0)
	store.EXPECT().Create(gomock.Any(), "generated-id", gomock.Any()).Return(nil)

	got, err := svc.Create(context.Background(), json.RawMessage(
		`{"name":"Lamp","product_type_id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22","quantity":1,"price":2,"entity_version":0}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Applied, got)
}

func TestCreate_ExistingIDIsSkipped(t *testing.T) {
	svc, store := newProductService(t)

	store.EXPECT().FetchCurrentVersion(gomock.Any(), "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11").Return(int64(0), nil)
	store.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	got, err := svc.Create(context.Background(), json.RawMessage(
		`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","name":"Lamp","product_type_id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22","quantity":1,"price":2,"entity_version":0}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Skipped, got)
}

func TestCreate_AlreadyExistsRaceIsSkipped(t *testing.T) {
	svc, store := newProductService(t)

	store.EXPECT().FetchCurrentVersion(gomock.Any(), "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11").Return(int64(0), domain.ErrNotFound)
	store.EXPECT().Create(gomock.Any(), "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11", gomock.Any()).Return(domain.ErrAlreadyExists)

	got, err := svc.Create(context.Background(), json.RawMessage(
		`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","name":"Lamp","product_type_id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22","quantity":1,"price":2,"entity_version":0}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Skipped, got)
}

func TestDelete_StampsDeclaredVersion(t *testing.T) {
	svc, store := newProductService(t)

	store.EXPECT().FetchCurrentVersion(gomock.Any(), "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11").Return(int64(4), nil)
	store.EXPECT().Delete(gomock.Any(), "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11", int64(5)).Return(nil)

	got, err := svc.Delete(context.Background(), json.RawMessage(`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","entity_version":5}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Applied, got)
}

func TestActions_InvalidIDNeverReachesStore(t *testing.T) {
	svc, store := newProductService(t)
	ctx := context.Background()

	store.EXPECT().FetchCurrentVersion(gomock.Any(), gomock.Any()).Times(0)
	store.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	store.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	got, err := svc.Update(ctx, json.RawMessage(`{"id":"not-a-uuid","entity_version":2}`))
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	assert.True(t, domain.IsValidation(err))
	assert.NotEqual(t, domain.Delayed, got)

	_, err = svc.Create(ctx, json.RawMessage(
		`{"id":"`+strings.Repeat("a", 64)+`","name":"Lamp","product_type_id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22","quantity":1,"price":2,"entity_version":0}`))
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestUpdate_CanonicalIDReachesStore(t *testing.T) {
	svc, store := newProductService(t)

	store.EXPECT().FetchCurrentVersion(gomock.Any(), "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11").Return(int64(1), nil)
	store.EXPECT().Update(gomock.Any(), "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11", gomock.Any()).Return(nil)

	got, err := svc.Update(context.Background(), json.RawMessage(
		`{"id":"0B9F3C1E-6D1A-4C52-9A27-3F1F4C8E2A11","entity_version":2}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Applied, got)
}
