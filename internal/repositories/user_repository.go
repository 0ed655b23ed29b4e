package repositories

import "storefront/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetAll() ([]models.User, error)
	GetByID(id string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error
}
