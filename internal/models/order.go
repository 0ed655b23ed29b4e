package models

import "time"

// OrderStatus is the set of states an order can be in. Any status may be
// set from any other; there is no transition graph at this layer.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order represents a customer order for a single product. UserID and
// ProductID are opaque references; referential integrity is not checked
// here.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string      `json:"userId" gorm:"type:varchar(36)"`
	ProductID       string      `json:"productId" gorm:"type:varchar(36)"`
	Quantity        int         `json:"quantity"`
	TotalAmount     float64     `json:"totalAmount"`
	ShippingAddress string      `json:"shippingAddress" gorm:"type:varchar(500)"`
	Notes           string      `json:"notes" gorm:"type:varchar(1000)"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20)"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// CreateOrderRequest is the request body for creating an order. Status is
// not accepted on create; new orders always start as pending.
type CreateOrderRequest struct {
	UserID          string   `json:"userId" validate:"required,uuid"`
	ProductID       string   `json:"productId" validate:"required,uuid"`
	Quantity        int      `json:"quantity" validate:"required,min=1"`
	TotalAmount     *float64 `json:"totalAmount" validate:"required,gte=0"`
	ShippingAddress string   `json:"shippingAddress" validate:"omitempty,max=500"`
	Notes           string   `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateOrderRequest is the request body for partially updating an order.
type UpdateOrderRequest struct {
	UserID          *string      `json:"userId" validate:"omitempty,uuid"`
	ProductID       *string      `json:"productId" validate:"omitempty,uuid"`
	Quantity        *int         `json:"quantity" validate:"omitempty,min=1"`
	TotalAmount     *float64     `json:"totalAmount" validate:"omitempty,gte=0"`
	ShippingAddress *string      `json:"shippingAddress" validate:"omitempty,max=500"`
	Notes           *string      `json:"notes" validate:"omitempty,max=1000"`
	Status          *OrderStatus `json:"status" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
}
