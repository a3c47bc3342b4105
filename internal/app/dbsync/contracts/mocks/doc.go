// Package mocks provides mock implementations for testing purposes.
package mocks

//go:generate mockgen -destination=mock_store.go -package=mocks github.com/murkotick/catalog-sync-worker/internal/app/dbsync/contracts Store
//go:generate mockgen -destination=mock_actions.go -package=mocks github.com/murkotick/catalog-sync-worker/internal/app/dbsync/contracts Actions
//go:generate mockgen -destination=mock_broker.go -package=mocks github.com/murkotick/catalog-sync-worker/internal/app/dbsync/contracts Broker
