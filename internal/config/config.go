// Package config reads the worker's environment once at startup into an
// immutable Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/murkotick/catalog-sync-worker/internal/broker"
	"github.com/murkotick/catalog-sync-worker/internal/pkg/tracing"
)

type Config struct {
	WorkerType string

	RabbitHost     string
	RabbitPort     string
	RabbitUser     string
	RabbitPassword string
	RabbitVHost    string
	Exchange       string
	DelayExchange  string
	Delay          time.Duration

	SpannerDatabase string
	HealthAddr      string
	LogLevel        string

	OTelEnabled     bool
	OTelEndpoint    string
	OTelSampleRatio float64
}

// Load fails when WORKER_TYPE is missing or a value cannot be parsed.
func Load() (Config, error) {
	var errs []error

	workerType, err := RequiredString("WORKER_TYPE")
	errs = append(errs, err)

	port, err := Port("RABBITMQ_PORT", "5672")
	errs = append(errs, err)

	delayMS, err := Int("DELAY_MS_DLX", 5000)
	errs = append(errs, err)
	if err == nil && delayMS <= 0 {
		errs = append(errs, fmt.Errorf("DELAY_MS_DLX must be positive (got %d)", delayMS))
	}

	ratio, err := Float("OTEL_SAMPLING_RATIO", 1)
	errs = append(errs, err)
	if err == nil && (ratio < 0 || ratio > 1) {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLING_RATIO must be within [0,1] (got %v)", ratio))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return Config{
		WorkerType:      strings.ToLower(strings.TrimSpace(workerType)),
		RabbitHost:      String("RABBITMQ_HOST", "localhost"),
		RabbitPort:      port,
		RabbitUser:      String("RABBITMQ_USER", "guest"),
		RabbitPassword:  String("RABBITMQ_PASSWORD", "guest"),
		RabbitVHost:     String("RABBITMQ_VHOST", "/"),
		Exchange:        String("RABBITMQ_EXCHANGE_NAME", "db_sync"),
		DelayExchange:   String("RABBITMQ_EXCHANGE_NAME_DLX", "db_sync_dlx"),
		Delay:           time.Duration(delayMS) * time.Millisecond,
		SpannerDatabase: String("SPANNER_DATABASE", "projects/test-project/instances/emulator-instance/databases/test-db"),
		HealthAddr:      String("HEALTH_ADDR", ":8081"),
		LogLevel:        String("LOG_LEVEL", "info"),
		OTelEnabled:     Bool("OTEL_ENABLED", false),
		OTelEndpoint:    String("OTEL_EXPORTER_OTLP_ENDPOINT", "jaeger:4317"),
		OTelSampleRatio: ratio,
	}, nil
}

// ServiceName identifies the worker in logs, traces and the broker UI.
func (c Config) ServiceName() string {
	return "sync-" + c.WorkerType
}

// RabbitURL assembles the AMQP URL from its parts.
func (c Config) RabbitURL() string {
	port, _ := strconv.Atoi(c.RabbitPort)
	return amqp.URI{
		Scheme:   "amqp",
		Host:     c.RabbitHost,
		Port:     port,
		Username: c.RabbitUser,
		Password: c.RabbitPassword,
		Vhost:    c.RabbitVHost,
	}.String()
}

func (c Config) Broker() broker.Config {
	return broker.Config{
		URL:            c.RabbitURL(),
		Exchange:       c.Exchange,
		DelayExchange:  c.DelayExchange,
		ExchangeKind:   "direct",
		RoutingKey:     c.WorkerType,
		DelayTTL:       c.Delay,
		ConnectionName: c.ServiceName(),
		ConsumerTag:    c.ServiceName(),
	}
}

func (c Config) Tracing() tracing.Config {
	return tracing.Config{
		Enabled:      c.OTelEnabled,
		ServiceName:  c.ServiceName(),
		OTLPEndpoint: c.OTelEndpoint,
		SampleRatio:  c.OTelSampleRatio,
	}
}

func String(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func RequiredString(key string) (string, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func Port(key, fallback string) (string, error) {
	v := String(key, fallback)
	p, err := strconv.Atoi(v)
	if err != nil || p < 1 || p > 65535 {
		return "", fmt.Errorf("%s must be a valid TCP port (got %q)", key, v)
	}
	return v, nil
}

func Int(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer (got %q)", key, v)
	}
	return n, nil
}

func Float(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number (got %q)", key, v)
	}
	return f, nil
}

func Bool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return fallback
}
