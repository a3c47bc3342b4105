package domain

import (
	"errors"
	"fmt"
)

// AggregateType names the event source a worker serves. It doubles as the
// primary routing key on the broker.
type AggregateType string

const (
	AggregateProduct     AggregateType = "product"
	AggregateProductType AggregateType = "producttype"
)

// ErrUnknownAggregateType is returned for a WORKER_TYPE outside the known set.
var ErrUnknownAggregateType = errors.New("sync: unknown aggregate type")

// ParseAggregateType validates a worker selector.
func ParseAggregateType(s string) (AggregateType, error) {
	switch t := AggregateType(s); t {
	case AggregateProduct, AggregateProductType:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAggregateType, s)
}

func (t AggregateType) String() string {
	return string(t)
}
