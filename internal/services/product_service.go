package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product from a validated request. Stock
// defaults to 0 and new products start available.
func (s *ProductService) CreateProduct(req models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct merges the supplied fields over the stored product and
// persists the result.
func (s *ProductService) UpdateProduct(id string, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
