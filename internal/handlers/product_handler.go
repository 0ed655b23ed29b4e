package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/internal/validation"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := h.validate.DecodeStrict(c.Body(), &req); err != nil {
		return err
	}

	product, err := h.service.CreateProduct(req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, product)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, product)
}

// HandleUpdateProduct partially updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req models.UpdateProductRequest
	if err := h.validate.DecodeStrict(c.Body(), &req); err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(c.Params("id"), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, product)
}

// HandleDeleteProduct removes a product. Success is a bare 204 with no body.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
