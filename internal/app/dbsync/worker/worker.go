package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/contracts"
	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/domain"
	"github.com/murkotick/catalog-sync-worker/internal/app/dbsync/registry"
	"github.com/murkotick/catalog-sync-worker/internal/broker"
	"github.com/murkotick/catalog-sync-worker/internal/pkg/tracing"
)

const tracerName = "github.com/murkotick/catalog-sync-worker/internal/app/dbsync/worker"

// Worker consumes outbox events for one aggregate type and applies them to
// the read store. Messages are handled strictly one at a time.
type Worker struct {
	broker   contracts.Broker
	registry *registry.Registry
	log      *slog.Logger
	tracer   trace.Tracer
	stopping atomic.Bool
}

func New(b contracts.Broker, reg *registry.Registry, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.Default()
	}
	return &Worker{
		broker:   b,
		registry: reg,
		log:      log,
		tracer:   otel.Tracer(tracerName),
	}
}

func (w *Worker) Aggregate() domain.AggregateType {
	return w.registry.Aggregate()
}

// Run connects and consumes until Shutdown is called or ctx is done. A
// broker fault is returned so the supervisor can restart the process.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.broker.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = w.broker.Disconnect() }()

	// Shutdown before Connect had nothing to disconnect.
	if w.stopping.Load() {
		w.log.Info("sync worker stopped before consuming")
		return nil
	}

	w.log.Info("sync worker started")
	err := w.broker.Consume(ctx, w.HandleDelivery)
	if err != nil && w.stopping.Load() && errors.Is(err, broker.ErrNotConnected) {
		// Shutdown won the race against Consume.
		err = nil
	}
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	w.log.Info("sync worker stopped")
	return nil
}

// Shutdown releases Run. Safe to call from a signal handler, more than once.
func (w *Worker) Shutdown(reason string) {
	if w.stopping.Swap(true) {
		return
	}
	w.log.Info("shutting down", "reason", reason)
	_ = w.broker.Disconnect()
}

// HandleDelivery runs one message through decode, dispatch and, when the
// event is premature or the store failed, the delay path. The delivery is
// acknowledged exactly once whatever happens, panics included.
func (w *Worker) HandleDelivery(ctx context.Context, d amqp.Delivery) {
	// an in-flight message is finished even when shutdown cancels ctx
	ctx = tracing.ExtractHeaders(context.WithoutCancel(ctx), d.Headers)
	ctx, span := w.tracer.Start(ctx, "sync "+w.Aggregate().String(),
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystemRabbitmq,
			semconv.MessagingOperationReceive,
			semconv.MessagingRabbitmqDestinationRoutingKey(d.RoutingKey),
			semconv.MessagingMessageID(d.MessageId),
		),
	)
	defer span.End()

	log := w.log.With("delivery_tag", d.DeliveryTag)
	if n := deathCount(d.Headers); n > 0 {
		log = log.With("retries", n)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while handling message", "panic", r)
			span.SetStatus(codes.Error, "panic")
		}
		if err := d.Ack(false); err != nil {
			log.Error("ack failed", "error", err)
		}
	}()

	env, err := domain.DecodeEnvelope(d.Body)
	if err != nil {
		log.Warn("dropping malformed message", "error", err)
		span.SetStatus(codes.Error, "invalid envelope")
		return
	}
	log = log.With("action", env.Action.String())
	span.SetAttributes(attribute.String("sync.action", env.Action.String()))

	outcome, err := w.registry.Dispatch(ctx, env)
	switch {
	case err != nil && domain.IsValidation(err):
		log.Warn("dropping invalid event", "error", err)
		span.SetStatus(codes.Error, "invalid payload")
	case err != nil:
		log.Error("write failed, retrying through delay queue", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "store fault")
		w.delay(ctx, log, d)
	case outcome == domain.Applied:
		log.Info("event applied")
	case outcome == domain.Skipped:
		log.Warn("stale event skipped")
	case outcome == domain.Delayed:
		log.Info("event premature, delaying")
		w.delay(ctx, log, d)
	}
	if err == nil {
		span.SetAttributes(attribute.String("sync.outcome", outcome.String()))
	}
}

// delay republishes the original body to the TTL queue. Failures are logged
// only; the original is acknowledged either way.
func (w *Worker) delay(ctx context.Context, log *slog.Logger, d amqp.Delivery) {
	msg := broker.MessageFromDelivery(d)
	msg.Headers = tracing.InjectHeaders(ctx, msg.Headers)
	if err := w.broker.Publish(ctx, msg, broker.DelayPath); err != nil {
		log.Error("delay publish failed, event dropped", "error", err)
	}
}

// deathCount sums the broker's x-death counters, i.e. how often the message
// already went through the delay queue.
func deathCount(headers amqp.Table) int64 {
	deaths, ok := headers["x-death"].([]any)
	if !ok {
		return 0
	}
	var total int64
	for _, entry := range deaths {
		t, ok := entry.(amqp.Table)
		if !ok {
			continue
		}
		if n, ok := t["count"].(int64); ok {
			total += n
		}
	}
	return total
}
