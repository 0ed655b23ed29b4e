package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/internal/validation"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service  *services.UserService
	validate *validation.Validator
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Patch("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleCreateUser creates a new user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := h.validate.DecodeStrict(c.Body(), &req); err != nil {
		return err
	}

	user, err := h.service.CreateUser(req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, user)
}

// HandleGetUsers retrieves all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, users)
}

// HandleGetUserByID retrieves a single user by its ID.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	user, err := h.service.GetUserByID(c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, user)
}

// HandleUpdateUser partially updates an existing user.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req models.UpdateUserRequest
	if err := h.validate.DecodeStrict(c.Body(), &req); err != nil {
		return err
	}

	user, err := h.service.UpdateUser(c.Params("id"), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, user)
}

// HandleDeleteUser removes a user. Success is a bare 204 with no body.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.service.DeleteUser(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
