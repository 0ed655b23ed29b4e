package services_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/services"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func TestOrderService_CreateOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockPublisher := new(MockEventPublisher)
	orderService := services.NewOrderService(mockRepo, mockPublisher)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) {
			o := args.Get(0).(*models.Order)
			o.ID = "order-123"
		}).Return(nil).Once()
	mockPublisher.On("Publish", "order.created", mock.Anything).Return(nil).Once()

	total := 199.98
	order, err := orderService.CreateOrder(models.CreateOrderRequest{
		UserID:      "123e4567-e89b-12d3-a456-426614174000",
		ProductID:   "123e4567-e89b-12d3-a456-426614174001",
		Quantity:    2,
		TotalAmount: &total,
	})

	assert.NoError(t, err)
	assert.Equal(t, "order-123", order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status, "new orders must start as pending")
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, 199.98, order.TotalAmount)

	// The published event carries the order identity and status.
	published := mockPublisher.Calls[0].Arguments.Get(1).([]byte)
	var event map[string]interface{}
	assert.NoError(t, json.Unmarshal(published, &event))
	assert.Equal(t, "order-123", event["orderId"])
	assert.Equal(t, "pending", event["status"])

	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_CreateOrder_NoPublisher(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	orderService := services.NewOrderService(mockRepo, nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	total := 50.0
	_, err := orderService.CreateOrder(models.CreateOrderRequest{
		UserID:      "123e4567-e89b-12d3-a456-426614174000",
		ProductID:   "123e4567-e89b-12d3-a456-426614174001",
		Quantity:    1,
		TotalAmount: &total,
	})

	assert.NoError(t, err, "missing publisher must not fail order creation")
	mockRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_PublishFailureIgnored(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockPublisher := new(MockEventPublisher)
	orderService := services.NewOrderService(mockRepo, mockPublisher)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	mockPublisher.On("Publish", "order.created", mock.Anything).
		Return(errors.New("broker unavailable")).Once()

	total := 25.0
	order, err := orderService.CreateOrder(models.CreateOrderRequest{
		UserID:      "123e4567-e89b-12d3-a456-426614174000",
		ProductID:   "123e4567-e89b-12d3-a456-426614174001",
		Quantity:    1,
		TotalAmount: &total,
	})

	assert.NoError(t, err, "publishing is best-effort")
	assert.NotNil(t, order)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_UpdateOrder_PartialMerge(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	orderService := services.NewOrderService(mockRepo, nil)

	existing := &models.Order{
		ID:              "order-1",
		UserID:          "123e4567-e89b-12d3-a456-426614174000",
		ProductID:       "123e4567-e89b-12d3-a456-426614174001",
		Quantity:        2,
		TotalAmount:     199.98,
		ShippingAddress: "123 Main St",
		Status:          models.OrderStatusPending,
	}
	mockRepo.On("GetByID", "order-1").Return(existing, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	newStatus := models.OrderStatusDelivered
	newQuantity := 3
	updated, err := orderService.UpdateOrder("order-1", models.UpdateOrderRequest{
		Status:   &newStatus,
		Quantity: &newQuantity,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", updated.UserID, "unsupplied fields must keep prior values")
	assert.Equal(t, 199.98, updated.TotalAmount)
	assert.Equal(t, "123 Main St", updated.ShippingAddress)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_UpdateOrder_NotFound(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	orderService := services.NewOrderService(mockRepo, nil)

	mockRepo.On("GetByID", "missing").Return(nil, apperrors.NewNotFound("order", "missing")).Once()

	_, err := orderService.UpdateOrder("missing", models.UpdateOrderRequest{})

	var notFoundErr *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))
	mockRepo.AssertNotCalled(t, "Update")
	mockRepo.AssertExpectations(t)
}
