// Package broker is the RabbitMQ client of a sync worker: one connection, one
// channel, prefetch 1, a primary queue and a TTL delay queue that
// dead-letters back into the primary exchange.
package broker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

const prefetchCount = 1

// Client owns the worker's single AMQP connection and channel.
type Client struct {
	cfg  Config
	log  *slog.Logger
	dial dialFunc

	mu       sync.Mutex
	conn     connection
	ch       channel
	queue    string
	confirms chan amqp.Confirmation
	returns  chan amqp.Return
	closes   chan *amqp.Error
	released chan struct{}

	// publishes are serialised so each confirm matches its message
	pubMu sync.Mutex
}

func NewClient(cfg Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		cfg:  cfg.withDefaults(),
		log:  log.With("component", "broker"),
		dial: dialAMQP,
	}
}

// Connect dials the broker and declares the topology. Calling it while
// connected is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil && !c.conn.IsClosed() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}

	props := amqp.NewConnectionProperties()
	if c.cfg.ConnectionName != "" {
		props.SetClientConnectionName(c.cfg.ConnectionName)
	}
	conn, err := c.dial(c.cfg.URL, amqp.Config{
		Heartbeat:  c.cfg.Heartbeat,
		Locale:     "en_US",
		Properties: props,
		Dial:       amqp.DefaultDial(c.cfg.DialTimeout),
	})
	if err != nil {
		return fmt.Errorf("%w: dial %s: %w", ErrConnection, c.cfg.redactedURL(), err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: open channel: %w", ErrConnection, err)
	}

	queue, err := c.setup(ch)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}

	c.conn = conn
	c.ch = ch
	c.queue = queue
	c.released = make(chan struct{})

	c.log.Info("broker connected",
		"url", c.cfg.redactedURL(),
		"exchange", c.cfg.Exchange,
		"delay_exchange", c.cfg.DelayExchange,
		"routing_key", c.cfg.RoutingKey,
		"delay_ttl", c.cfg.DelayTTL,
		"queue", queue,
	)
	return nil
}

// setup configures the channel and declares exchanges, queues and bindings.
// It returns the server-named primary queue.
func (c *Client) setup(ch channel) (string, error) {
	if err := ch.Qos(
		prefetchCount, // prefetch count
		0,             // prefetch size
		false,         // global
	); err != nil {
		return "", fmt.Errorf("set qos: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		return "", fmt.Errorf("enable confirms: %w", err)
	}
	c.confirms = ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	c.returns = ch.NotifyReturn(make(chan amqp.Return, 1))
	c.closes = ch.NotifyClose(make(chan *amqp.Error, 1))

	for _, name := range []string{c.cfg.Exchange, c.cfg.DelayExchange} {
		if err := ch.ExchangeDeclare(
			name,               // name
			c.cfg.ExchangeKind, // type
			true,               // durable
			false,              // auto-deleted
			false,              // internal
			false,              // no-wait
			nil,                // arguments
		); err != nil {
			return "", fmt.Errorf("declare exchange %q: %w", name, err)
		}
	}

	primary, err := ch.QueueDeclare(
		"",    // name (server-generated)
		false, // durable
		false, // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return "", fmt.Errorf("declare primary queue: %w", err)
	}
	if err := ch.QueueBind(primary.Name, c.cfg.RoutingKey, c.cfg.Exchange, false, nil); err != nil {
		return "", fmt.Errorf("bind primary queue: %w", err)
	}

	delay, err := ch.QueueDeclare(
		"",                     // name (server-generated)
		false,                  // durable
		false,                  // auto-delete
		true,                   // exclusive
		false,                  // no-wait
		c.cfg.delayQueueArgs(), // arguments
	)
	if err != nil {
		return "", fmt.Errorf("declare delay queue: %w", err)
	}
	if err := ch.QueueBind(delay.Name, c.cfg.DelayRoutingKey(), c.cfg.DelayExchange, false, nil); err != nil {
		return "", fmt.Errorf("bind delay queue: %w", err)
	}

	return primary.Name, nil
}

// Publish sends a persistent, mandatory message on the given path and waits
// for the broker confirm. An unroutable message fails with ErrPublish.
func (c *Client) Publish(ctx context.Context, msg Message, path Path) error {
	c.mu.Lock()
	conn, ch, confirms, returns := c.conn, c.ch, c.confirms, c.returns
	c.mu.Unlock()

	if conn == nil || ch == nil {
		return ErrNotConnected
	}
	if conn.IsClosed() {
		return fmt.Errorf("%w: connection is closed", ErrConnection)
	}
	if ch.IsClosed() {
		return fmt.Errorf("%w: channel is closed", ErrChannel)
	}

	exchange, key := c.cfg.route(path)

	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	drainReturns(returns)
	seq := ch.GetNextPublishSeqNo()
	if err := ch.PublishWithContext(ctx,
		exchange, // exchange
		key,      // routing key
		true,     // mandatory
		false,    // immediate
		msg.publishing(),
	); err != nil {
		return translate(ErrPublish, conn, err)
	}

	if err := awaitConfirm(ctx, conn, confirms, seq); err != nil {
		return err
	}

	// The broker sends basic.return before the ack of an unroutable message.
	select {
	case ret, ok := <-returns:
		if ok {
			return fmt.Errorf("%w: unroutable via %q/%q: %d %s",
				ErrPublish, exchange, key, ret.ReplyCode, ret.ReplyText)
		}
	default:
	}
	return nil
}

func awaitConfirm(ctx context.Context, conn connection, confirms <-chan amqp.Confirmation, seq uint64) error {
	for {
		select {
		case confirm, ok := <-confirms:
			if !ok {
				if conn.IsClosed() {
					return fmt.Errorf("%w: closed while awaiting confirm", ErrConnection)
				}
				return fmt.Errorf("%w: closed while awaiting confirm", ErrChannel)
			}
			// late confirms of earlier, abandoned publishes
			if confirm.DeliveryTag < seq {
				continue
			}
			if !confirm.Ack {
				return fmt.Errorf("%w: broker nacked delivery %d", ErrPublish, confirm.DeliveryTag)
			}
			return nil
		case <-ctx.Done():
			return fmt.Errorf("%w: awaiting confirm: %w", ErrPublish, ctx.Err())
		}
	}
}

func drainReturns(returns <-chan amqp.Return) {
	for {
		select {
		case _, ok := <-returns:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Consume delivers primary-queue messages to handler one at a time on the
// calling goroutine. It blocks until Disconnect is called or ctx is done,
// and then returns nil. If the delivery stream ends for any other reason it
// returns ErrConnection.
func (c *Client) Consume(ctx context.Context, handler Handler) error {
	c.mu.Lock()
	conn, ch, queue, released, closes := c.conn, c.ch, c.queue, c.released, c.closes
	c.mu.Unlock()

	if conn == nil || ch == nil {
		return ErrNotConnected
	}

	deliveries, err := ch.Consume(
		queue,             // queue
		c.cfg.ConsumerTag, // consumer
		false,             // auto-ack
		false,             // exclusive
		false,             // no-local
		false,             // no-wait
		nil,               // args
	)
	if err != nil {
		return translate(ErrConsume, conn, err)
	}

	c.log.Info("consuming", "queue", queue, "prefetch", prefetchCount)

	for {
		select {
		case <-released:
			return nil
		case <-ctx.Done():
			_ = c.Disconnect()
			return nil
		case d, ok := <-deliveries:
			if !ok {
				select {
				case <-released:
					return nil
				default:
				}
				return fmt.Errorf("%w: delivery stream closed: %w", ErrConnection, closeReason(closes))
			}
			handler(ctx, d)
		}
	}
}

func closeReason(closes <-chan *amqp.Error) error {
	select {
	case reason, ok := <-closes:
		if ok && reason != nil {
			return reason
		}
	default:
	}
	return amqp.ErrClosed
}

// Disconnect closes the connection and releases a blocked Consume. It never
// fails and may be called any number of times, before or after Connect.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released != nil {
		select {
		case <-c.released:
		default:
			close(c.released)
		}
	}

	if c.conn == nil {
		return nil
	}
	if !c.conn.IsClosed() {
		if err := c.conn.Close(); err != nil {
			c.log.Debug("close connection", "error", err)
		}
	}
	c.conn = nil
	c.ch = nil
	c.log.Info("broker disconnected")
	return nil
}

// Ready reports ErrNotConnected unless both connection and channel are open.
func (c *Client) Ready(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() || c.ch == nil || c.ch.IsClosed() {
		return ErrNotConnected
	}
	return nil
}
