package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// UserService handles business logic related to users.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.repo.GetAll()
}

// GetUserByID retrieves a single user by its ID.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.repo.GetByID(id)
}

// CreateUser creates a new user from a validated request.
func (s *UserService) CreateUser(req models.CreateUserRequest) (*models.User, error) {
	user := &models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser merges the supplied fields over the stored user and persists
// the result. Fields the caller did not supply keep their prior values.
func (s *UserService) UpdateUser(id string, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user by its ID.
func (s *UserService) DeleteUser(id string) error {
	return s.repo.Delete(id)
}
