package domain

import (
	"fmt"
	"strings"
)

// ProductCreate creates a product. ID is optional: the primary store usually
// sends it, otherwise the read store assigns one.
type ProductCreate struct {
	ID            *string  `json:"id,omitempty"`
	Name          string   `json:"name"`
	ProductTypeID string   `json:"product_type_id"`
	Quantity      *int64   `json:"quantity"`
	Price         *float64 `json:"price"`
	EntityVersion *int64   `json:"entity_version"`
}

func (r ProductCreate) Validate() error {
	if err := checkVersion(r.EntityVersion); err != nil {
		return err
	}
	if err := requireField("name", strings.TrimSpace(r.Name) != ""); err != nil {
		return err
	}
	if err := checkOptionalID(r.ID); err != nil {
		return err
	}
	if err := requireField("product_type_id", strings.TrimSpace(r.ProductTypeID) != ""); err != nil {
		return err
	}
	if err := checkUUID("product_type_id", r.ProductTypeID); err != nil {
		return err
	}
	if err := requireField("quantity", r.Quantity != nil); err != nil {
		return err
	}
	if err := requireField("price", r.Price != nil); err != nil {
		return err
	}
	return validateProductNumbers(r.Quantity, r.Price)
}

func (r ProductCreate) AggregateID() string    { return derefString(r.ID) }
func (r ProductCreate) DeclaredVersion() int64 { return derefVersion(r.EntityVersion) }

// ProductUpdate changes the provided fields only.
type ProductUpdate struct {
	ID            string   `json:"id"`
	Name          *string  `json:"name,omitempty"`
	ProductTypeID *string  `json:"product_type_id,omitempty"`
	Quantity      *int64   `json:"quantity,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	EntityVersion *int64   `json:"entity_version"`
}

func (r ProductUpdate) Validate() error {
	if err := checkVersion(r.EntityVersion); err != nil {
		return err
	}
	if err := checkID(r.ID); err != nil {
		return err
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidPayload)
	}
	if r.ProductTypeID != nil {
		if err := checkUUID("product_type_id", *r.ProductTypeID); err != nil {
			return err
		}
	}
	return validateProductNumbers(r.Quantity, r.Price)
}

func (r ProductUpdate) AggregateID() string    { return CanonicalID(r.ID) }
func (r ProductUpdate) DeclaredVersion() int64 { return derefVersion(r.EntityVersion) }

// ProductDelete removes a product from the read side.
type ProductDelete struct {
	ID            string `json:"id"`
	EntityVersion *int64 `json:"entity_version"`
}

func (r ProductDelete) Validate() error {
	if err := checkVersion(r.EntityVersion); err != nil {
		return err
	}
	return checkID(r.ID)
}

func (r ProductDelete) AggregateID() string    { return CanonicalID(r.ID) }
func (r ProductDelete) DeclaredVersion() int64 { return derefVersion(r.EntityVersion) }

func validateProductNumbers(quantity *int64, price *float64) error {
	if quantity != nil && *quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidPayload)
	}
	if price != nil && *price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidPayload)
	}
	return nil
}
