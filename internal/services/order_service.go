package services

import (
	"encoding/json"
	"log"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// EventPublisher publishes entity lifecycle events to a message broker.
// A nil publisher disables event emission.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	repo      repositories.OrderRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in
// which case lifecycle events are not emitted.
func NewOrderService(repo repositories.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.repo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.repo.GetByID(id)
}

// CreateOrder creates a new order from a validated request. New orders
// always start in the pending status.
func (s *OrderService) CreateOrder(req models.CreateOrderRequest) (*models.Order, error) {
	order := &models.Order{
		UserID:          req.UserID,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		TotalAmount:     *req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		Status:          models.OrderStatusPending,
	}
	if err := s.repo.Create(order); err != nil {
		return nil, err
	}

	s.publishEvent("order.created", order)
	return order, nil
}

// UpdateOrder merges the supplied fields over the stored order and
// persists the result. Status may move to any member of the enumerated
// set.
func (s *OrderService) UpdateOrder(id string, req models.UpdateOrderRequest) (*models.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.UserID != nil {
		order.UserID = *req.UserID
	}
	if req.ProductID != nil {
		order.ProductID = *req.ProductID
	}
	if req.Quantity != nil {
		order.Quantity = *req.Quantity
	}
	if req.TotalAmount != nil {
		order.TotalAmount = *req.TotalAmount
	}
	if req.ShippingAddress != nil {
		order.ShippingAddress = *req.ShippingAddress
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	if req.Status != nil {
		order.Status = *req.Status
	}

	if err := s.repo.Update(order); err != nil {
		return nil, err
	}

	s.publishEvent("order.updated", order)
	return order, nil
}

// DeleteOrder removes an order by its ID.
func (s *OrderService) DeleteOrder(id string) error {
	return s.repo.Delete(id)
}

// publishEvent emits an order lifecycle event. Publishing is best-effort:
// a broker failure is logged and never fails the request.
func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"orderId": order.ID,
		"userId":  order.UserID,
		"status":  order.Status,
		"total":   order.TotalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", routingKey, order.ID, err)
		return
	}

	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}
