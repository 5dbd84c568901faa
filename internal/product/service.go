package product

import "errors"

var ErrInvalidPrice = errors.New("product price must not be negative")

// ServiceInterface lets other packages (orders, tests) depend on the
// product service without the concrete type.
type ServiceInterface interface {
	List(categoryIDs []int) ([]Product, error)
	GetByID(id int) (Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	SetImage(id int, filename string) error
	Delete(id int) error
	Count() (int, error)
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List(categoryIDs []int) ([]Product, error) {
	return s.repo.List(categoryIDs)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	if p.Price.IsNegative() {
		return Product{}, ErrInvalidPrice
	}
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	if p.Price.IsNegative() {
		return Product{}, ErrInvalidPrice
	}
	return s.repo.Update(id, p)
}

func (s *Service) SetImage(id int, filename string) error {
	return s.repo.SetImage(id, filename)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *Service) Count() (int, error) {
	return s.repo.Count()
}
