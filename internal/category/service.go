package category

// Service provides business logic for categories. Name uniqueness is
// enforced here so every repository implementation gets it for free.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List() ([]Category, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Category, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(cat Category) (Category, error) {
	if _, err := s.repo.GetByName(cat.Name); err == nil {
		return Category{}, ErrNameExists
	} else if err != ErrNotFound {
		return Category{}, err
	}

	return s.repo.Create(cat)
}

func (s *Service) Update(id int, cat Category) (Category, error) {
	// the name may stay the same, but it must not collide with another row
	if existing, err := s.repo.GetByName(cat.Name); err == nil && existing.ID != id {
		return Category{}, ErrNameExists
	} else if err != nil && err != ErrNotFound {
		return Category{}, err
	}

	return s.repo.Update(id, cat)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
