package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/apperrors"
	"storefront/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository,
// used when the service runs without a database.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NewNotFound("order", id)
	}
	return &order, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// Update modifies an existing order.
func (r *MockOrderRepository) Update(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.orders[order.ID]
	if !ok {
		return apperrors.NewNotFound("order", order.ID)
	}
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// Delete removes an order by its ID.
func (r *MockOrderRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.orders[id]
	if !ok {
		return apperrors.NewNotFound("order", id)
	}
	delete(r.orders, id)
	return nil
}
