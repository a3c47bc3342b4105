package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"

	"github.com/murkotick/catalog-sync-worker/internal/config"
	"github.com/murkotick/catalog-sync-worker/internal/pkg/logging"
	"github.com/murkotick/catalog-sync-worker/migrations"
)

// Applies the embedded read-store DDL to SPANNER_DATABASE (typically the
// emulator for local dev).
//
// Usage (emulator):
//
//	export SPANNER_EMULATOR_HOST=localhost:9010
//	export SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/migrate
func main() {
	log := logging.New("sync-migrate", config.String("LOG_LEVEL", "info"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := config.RequiredString("SPANNER_DATABASE")
	if err != nil {
		log.Error("missing database", "err", err)
		os.Exit(1)
	}

	n, err := apply(ctx, db)
	if err != nil {
		log.Error("migration failed", "database", db, "err", err)
		os.Exit(1)
	}
	log.Info("applied DDL", "statements", n, "database", db)
}

func apply(ctx context.Context, db string) (int, error) {
	stmts, err := migrations.Statements()
	if err != nil {
		return 0, fmt.Errorf("read DDL: %w", err)
	}
	if len(stmts) == 0 {
		return 0, errors.New("no DDL statements embedded")
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return 0, fmt.Errorf("database admin client: %w", err)
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   db,
		Statements: stmts,
	})
	if err != nil {
		return 0, fmt.Errorf("UpdateDatabaseDdl: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return 0, fmt.Errorf("UpdateDatabaseDdl wait: %w", err)
	}
	return len(stmts), nil
}
