package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entity_version must be rejected before any reconciliation for every action.
func TestDecodeRequest_MissingVersion(t *testing.T) {
	cases := map[string]func() error{
		"product create": func() error {
			_, err := DecodeRequest[ProductCreate](json.RawMessage(`{"name":"Lamp","product_type_id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22","quantity":1,"price":9.5}`))
			return err
		},
		"product update": func() error {
			_, err := DecodeRequest[ProductUpdate](json.RawMessage(`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","name":"Lamp"}`))
			return err
		},
		"product delete": func() error {
			_, err := DecodeRequest[ProductDelete](json.RawMessage(`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11"}`))
			return err
		},
		"product type create": func() error {
			_, err := DecodeRequest[ProductTypeCreate](json.RawMessage(`{"name":"Lights","description":"d"}`))
			return err
		},
		"product type update": func() error {
			_, err := DecodeRequest[ProductTypeUpdate](json.RawMessage(`{"id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22"}`))
			return err
		},
		"product type delete": func() error {
			_, err := DecodeRequest[ProductTypeDelete](json.RawMessage(`{"id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22"}`))
			return err
		},
	}

	for name, decode := range cases {
		t.Run(name, func(t *testing.T) {
			err := decode()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingVersion)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestDecodeRequest_ProductCreate(t *testing.T) {
	req, err := DecodeRequest[ProductCreate](json.RawMessage(
		`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","name":"Lamp","product_type_id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22","quantity":4,"price":19.99,"entity_version":0}`))
	require.NoError(t, err)

	assert.Equal(t, "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11", req.AggregateID())
	assert.Equal(t, int64(0), req.DeclaredVersion())
	assert.Equal(t, int64(4), *req.Quantity)
	assert.InDelta(t, 19.99, *req.Price, 1e-9)
}

func TestDecodeRequest_ProductCreateWithoutID(t *testing.T) {
	req, err := DecodeRequest[ProductCreate](json.RawMessage(
		`{"name":"Lamp","product_type_id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22","quantity":4,"price":1,"entity_version":1}`))
	require.NoError(t, err)
	assert.Empty(t, req.AggregateID())
}

var longID = strings.Repeat("a", 64)

func TestDecodeRequest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		decode func() error
		want   error
	}{
		{"version as string", func() error {
			_, err := DecodeRequest[ProductDelete](json.RawMessage(`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","entity_version":"3"}`))
			return err
		}, ErrInvalidPayload},
		{"fractional version", func() error {
			_, err := DecodeRequest[ProductDelete](json.RawMessage(`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","entity_version":1.5}`))
			return err
		}, ErrInvalidPayload},
		{"negative version", func() error {
			_, err := DecodeRequest[ProductTypeDelete](json.RawMessage(`{"id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22","entity_version":-1}`))
			return err
		}, ErrNegativeVersion},
		{"update without id", func() error {
			_, err := DecodeRequest[ProductUpdate](json.RawMessage(`{"price":3,"entity_version":2}`))
			return err
		}, ErrMissingID},
		{"delete with blank id", func() error {
			_, err := DecodeRequest[ProductTypeDelete](json.RawMessage(`{"id":"  ","entity_version":2}`))
			return err
		}, ErrMissingID},
		{"create without name", func() error {
			_, err := DecodeRequest[ProductTypeCreate](json.RawMessage(`{"description":"d","entity_version":0}`))
			return err
		}, ErrInvalidPayload},
		{"create without price", func() error {
			_, err := DecodeRequest[ProductCreate](json.RawMessage(`{"name":"n","product_type_id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22","quantity":1,"entity_version":0}`))
			return err
		}, ErrInvalidPayload},
		{"negative quantity", func() error {
			_, err := DecodeRequest[ProductUpdate](json.RawMessage(`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","quantity":-2,"entity_version":2}`))
			return err
		}, ErrInvalidPayload},
		{"update with non-uuid id", func() error {
			_, err := DecodeRequest[ProductUpdate](json.RawMessage(`{"id":"not-a-uuid","entity_version":2}`))
			return err
		}, ErrInvalidID},
		{"delete with oversized id", func() error {
			_, err := DecodeRequest[ProductTypeDelete](json.RawMessage(`{"id":"` + longID + `","entity_version":2}`))
			return err
		}, ErrInvalidID},
		{"create with oversized id", func() error {
			_, err := DecodeRequest[ProductCreate](json.RawMessage(
				`{"id":"` + longID + `","name":"Lamp","product_type_id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22","quantity":1,"price":2,"entity_version":0}`))
			return err
		}, ErrInvalidID},
		{"product type create with non-uuid id", func() error {
			_, err := DecodeRequest[ProductTypeCreate](json.RawMessage(`{"id":"t-1","name":"n","description":"d","entity_version":0}`))
			return err
		}, ErrInvalidID},
		{"create with non-uuid product type", func() error {
			_, err := DecodeRequest[ProductCreate](json.RawMessage(`{"name":"Lamp","product_type_id":"t-1","quantity":1,"price":2,"entity_version":0}`))
			return err
		}, ErrInvalidID},
		{"update with non-uuid product type", func() error {
			_, err := DecodeRequest[ProductUpdate](json.RawMessage(`{"id":"0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11","product_type_id":"t-1","entity_version":2}`))
			return err
		}, ErrInvalidID},
		{"empty name on update", func() error {
			_, err := DecodeRequest[ProductTypeUpdate](json.RawMessage(`{"id":"5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22","name":"","entity_version":2}`))
			return err
		}, ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestDecodeRequest_CanonicalIDs(t *testing.T) {
	upd, err := DecodeRequest[ProductUpdate](json.RawMessage(
		`{"id":"{0B9F3C1E-6D1A-4C52-9A27-3F1F4C8E2A11}","entity_version":1}`))
	require.NoError(t, err)
	assert.Equal(t, "0b9f3c1e-6d1a-4c52-9a27-3f1f4c8e2a11", upd.AggregateID())

	create, err := DecodeRequest[ProductTypeCreate](json.RawMessage(
		`{"id":"urn:uuid:5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22","name":"Lights","description":"d","entity_version":0}`))
	require.NoError(t, err)
	assert.Equal(t, "5e2d7a90-1b3c-4f6e-8d2a-7c9b0e1f3a22", create.AggregateID())
	assert.Len(t, create.AggregateID(), 36)

	assert.Equal(t, "t-1", CanonicalID(" t-1 "))
}
