package broker

import (
	"net/url"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	defaultExchangeKind = "direct"
	delayKeySuffix      = "_dlx"
)

// Config is the immutable broker setup of one worker. RoutingKey is the
// aggregate type the worker serves.
type Config struct {
	URL            string
	Exchange       string
	DelayExchange  string
	ExchangeKind   string
	RoutingKey     string
	DelayTTL       time.Duration
	ConnectionName string
	ConsumerTag    string
	Heartbeat      time.Duration
	DialTimeout    time.Duration
}

func (c Config) withDefaults() Config {
	if c.ExchangeKind == "" {
		c.ExchangeKind = defaultExchangeKind
	}
	if c.Heartbeat <= 0 {
		c.Heartbeat = 10 * time.Second
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 30 * time.Second
	}
	return c
}

// DelayRoutingKey binds the delay queue on the dead-letter exchange.
func (c Config) DelayRoutingKey() string {
	return c.RoutingKey + delayKeySuffix
}

// delayQueueArgs expire messages after DelayTTL and dead-letter them back
// onto the primary exchange under the primary routing key.
func (c Config) delayQueueArgs() amqp.Table {
	return amqp.Table{
		"x-message-ttl":             c.DelayTTL.Milliseconds(),
		"x-dead-letter-exchange":    c.Exchange,
		"x-dead-letter-routing-key": c.RoutingKey,
	}
}

// route returns the exchange and routing key a path publishes to.
func (c Config) route(p Path) (exchange, key string) {
	if p == DelayPath {
		return c.DelayExchange, c.DelayRoutingKey()
	}
	return c.Exchange, c.RoutingKey
}

// redactedURL is safe to log.
func (c Config) redactedURL() string {
	u, err := url.Parse(c.URL)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
