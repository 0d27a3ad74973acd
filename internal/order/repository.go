package order

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("order not found")
)

// Filter narrows List results. Zero values mean "no constraint". Date selects
// orders created on that calendar day in the date's location.
type Filter struct {
	Status string
	Date   *time.Time
	UserID int
}

type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id int) (Order, error)
	// List returns orders matching the filter, newest first.
	List(f Filter) ([]Order, error)
	Update(id int, ord Order) (Order, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	nextID int
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{
		orders: make([]Order, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, ord := range seed {
		r.orders = append(r.orders, ord)
		if ord.ID > maxID {
			maxID = ord.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ord.ID == 0 {
		ord.ID = r.nextID
		r.nextID++
	}
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ord := range r.orders {
		if ord.ID == id {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) List(f Filter) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0, len(r.orders))
	for _, ord := range r.orders {
		if f.Status != "" && string(ord.Status) != f.Status {
			continue
		}
		if f.UserID != 0 && ord.UserID != f.UserID {
			continue
		}
		if f.Date != nil {
			start := time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, f.Date.Location())
			end := start.AddDate(0, 0, 1)
			if ord.CreatedAt.Before(start) || !ord.CreatedAt.Before(end) {
				continue
			}
		}
		out = append(out, ord)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) Update(id int, ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			ord.ID = id
			r.orders[i] = ord
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}
