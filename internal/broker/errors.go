package broker

import (
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Every transport fault leaving this package wraps exactly one of these.
var (
	ErrNotConnected = errors.New("broker: not connected")
	ErrConnection   = errors.New("broker: connection error")
	ErrChannel      = errors.New("broker: channel error")
	ErrPublish      = errors.New("broker: publish error")
	ErrConsume      = errors.New("broker: consume error")
)

// translate wraps err into the fault kind it belongs to. AMQP soft errors
// (3xx/4xx except 320 and 402) close the channel only; the rest close the
// connection. Anything unrecognised falls back to kind.
func translate(kind error, conn connection, err error) error {
	var amqpErr *amqp.Error
	if errors.As(err, &amqpErr) {
		if isChannelLevel(amqpErr.Code) {
			return fmt.Errorf("%w: %w", ErrChannel, err)
		}
		if amqpErr.Code != amqp.ChannelError {
			return fmt.Errorf("%w: %w", ErrConnection, err)
		}
		// amqp.ErrClosed carries 504 for both a closed channel and a
		// closed connection.
		if conn != nil && conn.IsClosed() {
			return fmt.Errorf("%w: %w", ErrConnection, err)
		}
		return fmt.Errorf("%w: %w", ErrChannel, err)
	}
	return fmt.Errorf("%w: %w", kind, err)
}

func isChannelLevel(code int) bool {
	switch code {
	case amqp.ContentTooLarge, amqp.NoRoute, amqp.NoConsumers,
		amqp.AccessRefused, amqp.NotFound, amqp.ResourceLocked, amqp.PreconditionFailed:
		return true
	}
	return false
}
