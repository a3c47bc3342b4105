package domain

import (
	"fmt"
	"strings"
)

type ProductTypeCreate struct {
	ID            *string `json:"id,omitempty"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	EntityVersion *int64  `json:"entity_version"`
}

func (r ProductTypeCreate) Validate() error {
	if err := checkVersion(r.EntityVersion); err != nil {
		return err
	}
	if err := checkOptionalID(r.ID); err != nil {
		return err
	}
	if err := requireField("name", strings.TrimSpace(r.Name) != ""); err != nil {
		return err
	}
	return requireField("description", strings.TrimSpace(r.Description) != "")
}

func (r ProductTypeCreate) AggregateID() string    { return derefString(r.ID) }
func (r ProductTypeCreate) DeclaredVersion() int64 { return derefVersion(r.EntityVersion) }

type ProductTypeUpdate struct {
	ID            string  `json:"id"`
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	EntityVersion *int64  `json:"entity_version"`
}

func (r ProductTypeUpdate) Validate() error {
	if err := checkVersion(r.EntityVersion); err != nil {
		return err
	}
	if err := checkID(r.ID); err != nil {
		return err
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidPayload)
	}
	return nil
}

func (r ProductTypeUpdate) AggregateID() string    { return CanonicalID(r.ID) }
func (r ProductTypeUpdate) DeclaredVersion() int64 { return derefVersion(r.EntityVersion) }

type ProductTypeDelete struct {
	ID            string `json:"id"`
	EntityVersion *int64 `json:"entity_version"`
}

func (r ProductTypeDelete) Validate() error {
	if err := checkVersion(r.EntityVersion); err != nil {
		return err
	}
	return checkID(r.ID)
}

func (r ProductTypeDelete) AggregateID() string    { return CanonicalID(r.ID) }
func (r ProductTypeDelete) DeclaredVersion() int64 { return derefVersion(r.EntityVersion) }
