package product

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("product not found")

// Repository defines persistence operations for products.
type Repository interface {
	List(categoryIDs []int) ([]Product, error)
	GetByID(id int) (Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	SetImage(id int, filename string) error
	Delete(id int) error
	Count() (int, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products []Product
	nextID   int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	repo := &InMemoryRepository{
		products: make([]Product, 0, len(seed)),
		nextID:   1,
	}

	maxID := 0
	for _, p := range seed {
		repo.products = append(repo.products, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) List(categoryIDs []int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		if len(categoryIDs) > 0 && !containsCategory(categoryIDs, p.CategoryID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func containsCategory(ids []int, categoryID *int) bool {
	if categoryID == nil {
		return false
	}
	for _, id := range ids {
		if id == *categoryID {
			return true
		}
	}
	return false
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}

	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}

	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, update Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			update.ID = id
			r.products[i] = update
			return update, nil
		}
	}

	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) SetImage(id int, filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products[i].Image = &filename
			return nil
		}
	}

	return ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

func (r *InMemoryRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.products), nil
}
