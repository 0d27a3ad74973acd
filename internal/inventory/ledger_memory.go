package inventory

import (
	"sync"

	"github.com/wildflour/bakery-backend/internal/product"
)

// MemoryLedger implements Ledger over a product repository. The mutex makes
// the validate-then-apply sequence atomic with respect to other ledger calls,
// which is enough for the single-process in-memory setup used in tests.
type MemoryLedger struct {
	mu       sync.Mutex
	products product.Repository
}

func NewMemoryLedger(products product.Repository) *MemoryLedger {
	return &MemoryLedger{products: products}
}

func (l *MemoryLedger) ReserveAll(items []Reservation) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	// validate every line before touching any stock; quantities are
	// accumulated per product so an order listing the same product twice
	// cannot oversell it
	required := map[int]int{}
	for _, it := range items {
		p, err := l.products.GetByID(it.ProductID)
		if err != nil {
			return productNotFound(it.ProductID)
		}
		required[it.ProductID] += it.Quantity
		if p.Stock < required[it.ProductID] {
			return insufficientStock(p.Name, required[it.ProductID], p.Stock)
		}
	}

	for id, qty := range required {
		p, err := l.products.GetByID(id)
		if err != nil {
			return productNotFound(id)
		}
		p.Stock -= qty
		if _, err := l.products.Update(p.ID, p); err != nil {
			return err
		}
	}
	return nil
}

func (l *MemoryLedger) RestoreAll(items []Reservation) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, it := range items {
		p, err := l.products.GetByID(it.ProductID)
		if err != nil {
			// product was deleted after the order was placed
			continue
		}
		p.Stock += it.Quantity
		if _, err := l.products.Update(p.ID, p); err != nil {
			return err
		}
	}
	return nil
}
