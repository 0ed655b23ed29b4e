package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/apperrors"
	"storefront/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository,
// used when the service runs without a database.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// GetAll returns all users.
func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		userList = append(userList, u)
	}
	return userList, nil
}

// GetByID returns a user by its ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewNotFound("user", id)
	}
	return &user, nil
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

// Update modifies an existing user.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.users[user.ID]
	if !ok {
		return apperrors.NewNotFound("user", user.ID)
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

// Delete removes a user by its ID.
func (r *MockUserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.users[id]
	if !ok {
		return apperrors.NewNotFound("user", id)
	}
	delete(r.users, id)
	return nil
}
