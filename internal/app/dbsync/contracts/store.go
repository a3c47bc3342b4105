package contracts

import "context"

// Store is the write side of one read-store aggregate. C and U are the
// aggregate's create and update requests.
//
// The store does not enforce versions; callers reconcile first and pass the
// declared version inside the request.
type Store[C, U any] interface {
	// FetchCurrentVersion returns domain.ErrNotFound when the aggregate does not exist.
	FetchCurrentVersion(ctx context.Context, id string) (int64, error)

	// Create returns domain.ErrAlreadyExists when the id is taken.
	Create(ctx context.Context, id string, req C) error

	// Update writes only the fields present in req, plus the new version.
	Update(ctx context.Context, id string, req U) error

	// Delete soft-deletes the aggregate and stamps version.
	Delete(ctx context.Context, id string, version int64) error
}
