package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/apperrors"
	"storefront/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// GetAll retrieves all users from the database.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, apperrors.NewStorageError("get all users", err)
	}
	return users, nil
}

// GetByID retrieves a single user by its ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user", id)
		}
		return nil, apperrors.NewStorageError("get user by id", err)
	}
	return &user, nil
}

// Create creates a new user in the database, assigning a fresh identity
// when none is set.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return apperrors.NewStorageError("create user", err)
	}
	return nil
}

// Update persists an existing user.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return apperrors.NewStorageError("update user", res.Error)
	}
	// Save does not report ErrRecordNotFound for a missing row, so check
	// RowsAffected.
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("user", user.ID)
	}
	return nil
}

// Delete removes a user by its ID from the database.
func (r *GORMUserRepository) Delete(id string) error {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.NewStorageError("delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("user", id)
	}
	return nil
}
