package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/internal/validation"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validation.Validator
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// HandleCreateOrder creates a new order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req models.CreateOrderRequest
	if err := h.validate.DecodeStrict(c.Body(), &req); err != nil {
		return err
	}

	order, err := h.service.CreateOrder(req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, order)
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, order)
}

// HandleUpdateOrder partially updates an existing order, including status
// changes.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	var req models.UpdateOrderRequest
	if err := h.validate.DecodeStrict(c.Body(), &req); err != nil {
		return err
	}

	order, err := h.service.UpdateOrder(c.Params("id"), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, order)
}

// HandleDeleteOrder removes an order. Success is a bare 204 with no body.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.service.DeleteOrder(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
