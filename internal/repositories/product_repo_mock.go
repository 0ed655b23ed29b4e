package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/apperrors"
	"storefront/internal/models"
)

// MockProductRepository is an in-memory implementation of
// ProductRepository, used when the service runs without a database.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NewNotFound("product", id)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return apperrors.NewNotFound("product", product.ID)
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return apperrors.NewNotFound("product", id)
	}
	delete(r.products, id)
	return nil
}
