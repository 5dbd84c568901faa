package user

import "golang.org/x/crypto/bcrypt"

// ServiceInterface lets handlers and tests depend on the user service
// without the concrete type.
type ServiceInterface interface {
	List() ([]User, error)
	GetByID(id int) (User, error)
	Register(user User) (User, error)
	Authenticate(email, password string) (User, error)
	Delete(id int) error
	Count() (int, error)
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]User, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Register(user User) (User, error) {
	if _, err := s.repo.GetByEmail(user.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user.Password = string(hashed)
	return s.repo.Create(user)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *Service) Count() (int, error) {
	return s.repo.Count()
}
