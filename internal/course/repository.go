package course

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("course not found")

type Repository interface {
	List() ([]Course, error)
	GetByID(id int) (Course, error)
	Create(c Course) (Course, error)
	Update(id int, c Course) (Course, error)
	Delete(id int) error

	ListApplications() ([]Application, error)
	CreateApplication(a Application) (Application, error)
}

type InMemoryRepository struct {
	mu           sync.RWMutex
	courses      []Course
	applications []Application
	nextID       int
	nextAppID    int
}

func NewInMemoryRepository(seed []Course) *InMemoryRepository {
	r := &InMemoryRepository{
		courses:   make([]Course, 0, len(seed)),
		nextID:    1,
		nextAppID: 1,
	}
	maxID := 0
	for _, c := range seed {
		r.courses = append(r.courses, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Course, len(r.courses))
	copy(out, r.courses)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return Course{}, ErrNotFound
}

func (r *InMemoryRepository) Create(c Course) (Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	r.courses = append(r.courses, c)
	return c, nil
}

func (r *InMemoryRepository) Update(id int, c Course) (Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.courses {
		if r.courses[i].ID == id {
			c.ID = id
			r.courses[i] = c
			return c, nil
		}
	}
	return Course{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.courses {
		if r.courses[i].ID == id {
			r.courses = append(r.courses[:i], r.courses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) ListApplications() ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Application, len(r.applications))
	copy(out, r.applications)
	return out, nil
}

func (r *InMemoryRepository) CreateApplication(a Application) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == 0 {
		a.ID = r.nextAppID
		r.nextAppID++
	}
	r.applications = append(r.applications, a)
	return a, nil
}
