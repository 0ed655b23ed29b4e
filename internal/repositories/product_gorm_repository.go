package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/apperrors"
	"storefront/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, apperrors.NewStorageError("get all products", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("product", id)
		}
		return nil, apperrors.NewStorageError("get product by id", err)
	}
	return &product, nil
}

// Create creates a new product in the database, assigning a fresh
// identity when none is set.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return apperrors.NewStorageError("create product", err)
	}
	return nil
}

// Update persists an existing product. Save writes all fields, including
// zero values, which is what the merge-then-persist update flow needs.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return apperrors.NewStorageError("update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("product", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.NewStorageError("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("product", id)
	}
	return nil
}
