package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/apperrors"
	"storefront/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders from the database.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Find(&orders).Error; err != nil {
		return nil, apperrors.NewStorageError("get all orders", err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID from the database.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("order", id)
		}
		return nil, apperrors.NewStorageError("get order by id", err)
	}
	return &order, nil
}

// Create creates a new order in the database, assigning a fresh identity
// when none is set.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Create(order).Error; err != nil {
		return apperrors.NewStorageError("create order", err)
	}
	return nil
}

// Update persists an existing order.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Save(order)
	if res.Error != nil {
		return apperrors.NewStorageError("update order", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("order", order.ID)
	}
	return nil
}

// Delete deletes an order by its ID from the database.
func (r *GORMOrderRepository) Delete(id string) error {
	res := r.db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.NewStorageError("delete order", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("order", id)
	}
	return nil
}
