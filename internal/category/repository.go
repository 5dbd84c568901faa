package category

import (
	"errors"
	"sync"
)

var (
	ErrNotFound   = errors.New("category not found")
	ErrNameExists = errors.New("category name already in use")
)

// Repository defines persistence operations for categories.
type Repository interface {
	List() ([]Category, error)
	GetByID(id int) (Category, error)
	GetByName(name string) (Category, error)
	Create(cat Category) (Category, error)
	Update(id int, cat Category) (Category, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu         sync.RWMutex
	categories []Category
	nextID     int
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	repo := &InMemoryRepository{
		categories: make([]Category, 0, len(seed)),
		nextID:     1,
	}

	maxID := 0
	for _, cat := range seed {
		repo.categories = append(repo.categories, cat)
		if cat.ID > maxID {
			maxID = cat.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) List() ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cat := range r.categories {
		if cat.ID == id {
			return cat, nil
		}
	}

	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) GetByName(name string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cat := range r.categories {
		if cat.Name == name {
			return cat, nil
		}
	}

	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Create(cat Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cat.ID == 0 {
		cat.ID = r.nextID
		r.nextID++
	}

	r.categories = append(r.categories, cat)
	return cat, nil
}

func (r *InMemoryRepository) Update(id int, update Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, cat := range r.categories {
		if cat.ID == id {
			update.ID = id
			r.categories[i] = update
			return update, nil
		}
	}

	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, cat := range r.categories {
		if cat.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}
