package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/domain"
)

// fetchVersion reads entity_version of one row. Soft-deleted rows still
// report their version so late events for them reconcile as stale.
func fetchVersion(ctx context.Context, client *spanner.Client, table, keyCol, id string) (int64, error) {
	stmt := spanner.Statement{
		SQL:    fmt.Sprintf("SELECT entity_version FROM %s WHERE %s = @id", table, keyCol),
		Params: map[string]interface{}{"id": id},
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query %s version: %w", table, err)
	}

	var version int64
	if err := row.Columns(&version); err != nil {
		return 0, fmt.Errorf("decode %s version: %w", table, err)
	}
	return version, nil
}
