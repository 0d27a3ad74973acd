// Package inventory enforces the stock invariants of the shop: a product's
// stock never goes negative, and reserving stock for an order is
// all-or-nothing across the order's item set.
package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Reservation is one product/quantity pair within an order.
type Reservation struct {
	ProductID int
	Quantity  int
}

// Ledger reserves and restores product stock.
//
// ReserveAll applies every reservation or none: if any line references a
// missing product or exceeds the available stock, no stock is mutated and the
// returned error wraps ErrProductNotFound or ErrInsufficientStock naming the
// offending product.
//
// RestoreAll adds each quantity back to its product's stock. It is used only
// on refund and skips products that no longer exist, so deleting a product
// does not break refunds of historical orders.
type Ledger interface {
	ReserveAll(items []Reservation) error
	RestoreAll(items []Reservation) error
}

func insufficientStock(name string, required, available int) error {
	return fmt.Errorf("%w for %s: requested %d, available %d", ErrInsufficientStock, name, required, available)
}

func productNotFound(id int) error {
	return fmt.Errorf("%w: %d", ErrProductNotFound, id)
}
