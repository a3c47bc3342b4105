package broker

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Path selects where a message is published.
type Path int

const (
	// PrimaryPath delivers straight to the consuming queue.
	PrimaryPath Path = iota
	// DelayPath parks the message in the TTL queue; it comes back on the
	// primary routing key once the TTL expires.
	DelayPath
)

func (p Path) String() string {
	if p == DelayPath {
		return "delay"
	}
	return "primary"
}

// Message is an outgoing message. Body is published unchanged.
type Message struct {
	Body        []byte
	Headers     amqp.Table
	ContentType string
	MessageID   string
}

// MessageFromDelivery copies a received message for republishing.
func MessageFromDelivery(d amqp.Delivery) Message {
	headers := make(amqp.Table, len(d.Headers))
	for k, v := range d.Headers {
		headers[k] = v
	}
	return Message{
		Body:        d.Body,
		Headers:     headers,
		ContentType: d.ContentType,
		MessageID:   d.MessageId,
	}
}

func (m Message) publishing() amqp.Publishing {
	contentType := m.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	return amqp.Publishing{
		Headers:      m.Headers,
		ContentType:  contentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    m.MessageID,
		Timestamp:    time.Now().UTC(),
		Body:         m.Body,
	}
}

// Handler processes one delivery and is responsible for acknowledging it.
type Handler func(ctx context.Context, d amqp.Delivery)
