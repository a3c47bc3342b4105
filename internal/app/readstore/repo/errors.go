package repo

import (
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/domain"
)

// mapError translates Spanner errors into store faults the sync service
// understands. Codes that no retry can fix become domain.ErrRejected; the
// rest (Unavailable, Aborted, DeadlineExceeded, ...) pass through unchanged
// and go round the delay queue.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch spanner.ErrCode(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %w", domain.ErrAlreadyExists, err)
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return fmt.Errorf("%w: %w", domain.ErrRejected, err)
	}
	return err
}
