// Command worker keeps one read-store aggregate in sync with the outbox
// events published to RabbitMQ. WORKER_TYPE selects the aggregate.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/worker"
	"github.com/murkotick/catalog-sync-worker/internal/app/readstore/repo"
	"github.com/murkotick/catalog-sync-worker/internal/broker"
	"github.com/murkotick/catalog-sync-worker/internal/config"
	"github.com/murkotick/catalog-sync-worker/internal/pkg/clock"
	"github.com/murkotick/catalog-sync-worker/internal/pkg/committer"
	"github.com/murkotick/catalog-sync-worker/internal/pkg/logging"
	"github.com/murkotick/catalog-sync-worker/internal/pkg/shutdown"
	"github.com/murkotick/catalog-sync-worker/internal/pkg/tracing"
	"github.com/murkotick/catalog-sync-worker/internal/transport/http/health"
)

func main() {
	if err := run(); err != nil {
		slog.Error("sync worker exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logging.New(cfg.ServiceName(), cfg.LogLevel)
	slog.SetDefault(log)

	ctx := context.Background()

	otelShutdown, err := tracing.Setup(ctx, cfg.Tracing())
	if err != nil {
		log.Error("tracing setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		return fmt.Errorf("spanner client: %w", err)
	}
	defer client.Close()

	cm := committer.NewAdapter(client)
	clk := clock.RealClock{}
	stores := worker.Stores{
		Products:     repo.NewProductStore(client, cm, clk),
		ProductTypes: repo.NewProductTypeStore(client, cm, clk),
	}

	bc := broker.NewClient(cfg.Broker(), log)
	w, err := worker.NewFactory(bc, stores, log).Create(cfg.WorkerType)
	if err != nil {
		return fmt.Errorf("worker type %q: %w", cfg.WorkerType, err)
	}

	srv := health.NewServer(cfg.HealthAddr, health.ReadyCheck{Name: "rabbitmq", Check: bc.Ready})
	go func() {
		log.Info("health listening", "addr", cfg.HealthAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("health server error", "err", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	runCtx, stop := shutdown.OnSignal(ctx, func(sig os.Signal) {
		w.Shutdown(sig.String())
	})
	defer stop()

	return w.Run(runCtx)
}
