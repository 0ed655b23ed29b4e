package models

import "time"

// Product represents a product in the catalog.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(200)"`
	Description string    `json:"description" gorm:"type:varchar(1000)"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category" gorm:"type:varchar(100)"`
	ImageURL    string    `json:"imageUrl" gorm:"type:varchar(500)"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateProductRequest is the request body for creating a product.
// Price is a pointer so that an explicit 0 is distinguishable from an
// absent field.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=1000"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Category    string   `json:"category" validate:"omitempty,max=100"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateProductRequest is the request body for partially updating a product.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url"`
	IsAvailable *bool    `json:"isAvailable"`
}
