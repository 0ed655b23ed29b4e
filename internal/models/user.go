package models

import "time"

// User represents a registered customer.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	FirstName string    `json:"firstName" gorm:"type:varchar(50)"`
	LastName  string    `json:"lastName" gorm:"type:varchar(50)"`
	Phone     string    `json:"phone" gorm:"type:varchar(50)"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Phone     string `json:"phone"`
}

// UpdateUserRequest is the request body for partially updating a user.
// Pointer fields distinguish "not supplied" from a zero value; nil fields
// leave the stored value untouched.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Phone     *string `json:"phone"`
}
