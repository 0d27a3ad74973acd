package page

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("page not found")

type Repository interface {
	List() ([]Page, error)
	GetBySlug(slug string) (Page, error)
	// Upsert creates the page when the slug is new, otherwise replaces it.
	Upsert(p Page) (Page, error)
	Delete(slug string) error
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Page
	nextID  int
}

func NewInMemoryRepository(seed []Page) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Page, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Page, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetBySlug(slug string) (Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Page{}, ErrNotFound
}

func (r *InMemoryRepository) Upsert(p Page) (Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].Slug == p.Slug {
			p.ID = r.storage[i].ID
			r.storage[i] = p
			return p, nil
		}
	}
	p.ID = r.nextID
	r.nextID++
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Delete(slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].Slug == slug {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
