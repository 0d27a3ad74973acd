package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wildflour/bakery-backend/internal/inventory"
	"github.com/wildflour/bakery-backend/internal/product"
)

var (
	ErrForbidden         = errors.New("not authorized")
	ErrInvalidState      = errors.New("only completed orders can be refunded")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("item quantity must be positive")
)

// Actor identifies who is performing an operation. Authorization lives in the
// service so every caller (HTTP or otherwise) gets the same rules.
type Actor struct {
	UserID int
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == "admin" }

type ItemInput struct {
	ProductID int `json:"product"`
	Quantity  int `json:"quantity"`
}

// CreateInput carries a checkout request. Total is client-supplied and stored
// as-is, matching the storefront contract.
type CreateInput struct {
	Items    []ItemInput `json:"items"`
	Total    float64     `json:"total"`
	Customer Customer    `json:"customer"`
	Shipping Shipping    `json:"shipping"`
	Payment  Payment     `json:"payment"`
}

type Service struct {
	repo     Repository
	products product.Repository
	ledger   inventory.Ledger
	now      func() time.Time
}

func NewService(repo Repository, products product.Repository, ledger inventory.Ledger) *Service {
	return &Service{repo: repo, products: products, ledger: ledger, now: time.Now}
}

// Create reserves stock for every line, snapshots the product details into
// the order and persists it in Pending status. Reservation is all-or-nothing:
// a shortfall on any line leaves every product's stock untouched.
func (s *Service) Create(input CreateInput, actor Actor) (Order, error) {
	if len(input.Items) == 0 {
		return Order{}, ErrEmptyOrder
	}
	for _, it := range input.Items {
		if it.Quantity <= 0 {
			return Order{}, ErrInvalidQuantity
		}
	}

	ids := make([]int, 0, len(input.Items))
	for _, it := range input.Items {
		ids = append(ids, it.ProductID)
	}
	fetched, err := s.products.ListByIDs(ids)
	if err != nil {
		return Order{}, err
	}
	byID := make(map[int]product.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}

	items := make([]LineItem, 0, len(input.Items))
	reservations := make([]inventory.Reservation, 0, len(input.Items))
	for _, it := range input.Items {
		p, ok := byID[it.ProductID]
		if !ok {
			return Order{}, fmt.Errorf("%w: %d", inventory.ErrProductNotFound, it.ProductID)
		}
		items = append(items, LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
			Image:     p.Image,
		})
		reservations = append(reservations, inventory.Reservation{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	if err := s.ledger.ReserveAll(reservations); err != nil {
		return Order{}, err
	}

	now := s.now()
	ord := Order{
		Reference: uuid.NewString(),
		Items:     items,
		Total:     input.Total,
		Customer:  input.Customer,
		Shipping:  input.Shipping,
		Payment:   input.Payment,
		UserID:    actor.UserID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ord)
	if err != nil {
		// compensate the reservation so the failed checkout leaves stock intact
		if rerr := s.ledger.RestoreAll(reservations); rerr != nil {
			fmt.Printf("warning: could not restore stock after failed order create: %v\n", rerr)
		}
		return Order{}, err
	}
	return created, nil
}

func (s *Service) Get(id int, actor Actor) (Order, error) {
	ord, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if !actor.IsAdmin() && ord.UserID != actor.UserID {
		return Order{}, ErrForbidden
	}
	return ord, nil
}

// List returns all orders matching the filter, newest first. Admin only.
func (s *Service) List(f Filter, actor Actor) ([]Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.repo.List(f)
}

// ListByUser returns the actor's own orders, newest first.
func (s *Service) ListByUser(actor Actor) ([]Order, error) {
	return s.repo.List(Filter{UserID: actor.UserID})
}

// UpdateStatus moves an order along the lifecycle. Admin only; transitions
// outside the lifecycle map are rejected.
func (s *Service) UpdateStatus(id int, status Status, actor Actor) (Order, error) {
	ord, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if !actor.IsAdmin() {
		return Order{}, ErrForbidden
	}
	if !IsValidStatus(status) {
		return Order{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}
	if !CanTransition(ord.Status, status) {
		return Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ord.Status, status)
	}

	ord.Status = status
	ord.UpdatedAt = s.now()
	return s.repo.Update(ord.ID, ord)
}

// Refund sets a Completed order to Refunded and restores the snapshotted
// quantities to stock. The order's owner or an admin may refund.
func (s *Service) Refund(id int, actor Actor) (Order, error) {
	ord, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if !actor.IsAdmin() && ord.UserID != actor.UserID {
		return Order{}, ErrForbidden
	}
	if ord.Status != StatusCompleted {
		return Order{}, ErrInvalidState
	}

	// restore first, then commit the status, so a refund never ends up
	// recorded without its restock
	restores := make([]inventory.Reservation, 0, len(ord.Items))
	for _, it := range ord.Items {
		restores = append(restores, inventory.Reservation{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	if err := s.ledger.RestoreAll(restores); err != nil {
		return Order{}, err
	}

	ord.Status = StatusRefunded
	ord.UpdatedAt = s.now()
	updated, err := s.repo.Update(ord.ID, ord)
	if err != nil {
		if rerr := s.ledger.ReserveAll(restores); rerr != nil {
			fmt.Printf("warning: could not re-reserve stock after failed refund update: %v\n", rerr)
		}
		return Order{}, err
	}
	return updated, nil
}
