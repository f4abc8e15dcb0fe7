package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type StockOperation string

const (
	StockOperationIncrease StockOperation = "INCREASE"
	StockOperationDecrease StockOperation = "DECREASE"
)

func (o StockOperation) IsValid() bool {
	return o == StockOperationIncrease || o == StockOperationDecrease
}

// Stock is the inventory of a single SKU. Quantity only moves through
// Increase and Decrease; Version is bookkeeping owned by the store.
type Stock struct {
	ID        ID
	Sku       string
	Name      string
	Quantity  int
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewStock(id ID, sku string, name string, initialQuantity int) (*Stock, error) {
	if id.IsEmpty() {
		return nil, newInvalidArgument("id cannot be empty")
	}
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, newInvalidArgument("sku cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newInvalidArgument("name cannot be empty")
	}
	if initialQuantity < 0 {
		return nil, newInvalidArgument("initial quantity cannot be negative")
	}

	now := time.Now()
	return &Stock{
		ID:        id,
		Sku:       sku,
		Name:      name,
		Quantity:  initialQuantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *Stock) Increase(amount int) error {
	if amount <= 0 {
		return newInvalidArgument("amount to increase stock must be positive")
	}
	if amount > math.MaxInt-s.Quantity {
		return newInvalidArgument(fmt.Sprintf("amount to increase stock overflows quantity, current quantity: %d", s.Quantity))
	}
	s.Quantity += amount
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Stock) Decrease(amount int) error {
	if amount <= 0 {
		return newInvalidArgument("amount to decrease stock must be positive")
	}
	if amount > s.Quantity {
		return newInvalidState(fmt.Sprintf("cannot decrease stock below zero, current quantity: %d", s.Quantity))
	}
	s.Quantity -= amount
	s.UpdatedAt = time.Now()
	return nil
}

// Equal compares stocks by SKU only; the storage id is not part of identity.
func (s *Stock) Equal(other *Stock) bool {
	if s == nil || other == nil {
		return false
	}
	return s.Sku == other.Sku
}

// HashKey is the SKU; a nil stock hashes to the empty key.
func (s *Stock) HashKey() string {
	if s == nil {
		return ""
	}
	return s.Sku
}

func (s *Stock) String() string {
	return fmt.Sprintf("Stock{sku=%s, name=%s, quantity=%d}", s.Sku, s.Name, s.Quantity)
}
