// Package models defines the data model for entity resolution
package models

import (
	"errors"
	"time"
)

// EntityKind identifies the class of business entity being resolved
type EntityKind string

const (
	EntityKindClient   EntityKind = "client"
	EntityKindSupplier EntityKind = "supplier"
	EntityKindProduct  EntityKind = "product"
)

// ErrUnknownEntityKind signals a caller programming error. It is distinct
// from an empty match list, which is a normal outcome.
var ErrUnknownEntityKind = errors.New("unknown entity kind")

// Valid reports whether the kind is one of the supported entity kinds
func (k EntityKind) Valid() bool {
	switch k {
	case EntityKindClient, EntityKindSupplier, EntityKindProduct:
		return true
	}
	return false
}

// CandidateEntity is a read-only projection of a persisted record. It is
// sourced fresh per resolution call and never mutated by the engine.
type CandidateEntity struct {
	ID        string     `json:"id" db:"id"`
	TenantID  string     `json:"tenant_id" db:"tenant_id"`
	Kind      EntityKind `json:"kind" db:"kind"`
	Name      string     `json:"name" db:"name"`
	Email     *string    `json:"email,omitempty" db:"email"`
	Phone     *string    `json:"phone,omitempty" db:"phone"`
	Reference *string    `json:"reference,omitempty" db:"reference"`
	Barcode   *string    `json:"barcode,omitempty" db:"barcode"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// EntityFields are the candidate fields carried by a create-action request
type EntityFields struct {
	Name      string `json:"name" validate:"required_without_all=FirstName LastName"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Reference string `json:"reference,omitempty"`
	Barcode   string `json:"barcode,omitempty"`
}
