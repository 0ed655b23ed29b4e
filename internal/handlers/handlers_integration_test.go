package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

var testApp *fiber.App

// envelope mirrors the wire format of every JSON response.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors []struct {
		Field  string `json:"field"`
		Reason string `json:"reason"`
	} `json:"errors"`
}

// setupApp builds a Fiber app over an in-memory SQLite database with all
// three resources mounted, mirroring how the service binaries assemble
// themselves.
func setupApp() (*fiber.App, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}); err != nil {
		return nil, err
	}

	userHandler := handlers.NewUserHandler(
		services.NewUserService(repositories.NewGORMUserRepository(db)))
	productHandler := handlers.NewProductHandler(
		services.NewProductService(repositories.NewGORMProductRepository(db)))
	orderHandler := handlers.NewOrderHandler(
		services.NewOrderService(repositories.NewGORMOrderRepository(db), nil))

	cfg := config.Config{ServiceName: "storefront-test", Port: ":0"}
	return app.New(cfg, userHandler, productHandler, orderHandler), nil
}

func TestMain(m *testing.M) {
	var err error
	testApp, err = setupApp()
	if err != nil {
		log.Fatalf("Failed to set up test app: %v", err)
	}
	os.Exit(m.Run())
}

// doRequest performs a request against the test app and returns the
// response with its decoded envelope.
func doRequest(t *testing.T, method, path string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := testApp.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var env envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), "every non-empty response must be JSON: %s", raw)
	}
	return resp, env
}

func TestCreateUser_ReturnsCreatedEntity(t *testing.T) {
	resp, env := doRequest(t, http.MethodPost, "/api/users", fiber.Map{
		"email":     "john@example.com",
		"firstName": "John",
		"lastName":  "Doe",
		"phone":     "+66812345678",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	var created models.User
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "john@example.com", created.Email)

	// Read-after-create returns the same entity.
	resp, env = doRequest(t, http.MethodGet, "/api/users/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.User
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Email, fetched.Email)
	assert.Equal(t, created.FirstName, fetched.FirstName)
	assert.Equal(t, created.Phone, fetched.Phone)
}

func TestCreateUser_IdentitiesAreUnique(t *testing.T) {
	_, first := doRequest(t, http.MethodPost, "/api/users", fiber.Map{
		"email":     "a@example.com",
		"firstName": "Ada",
		"lastName":  "Lovelace",
	})
	_, second := doRequest(t, http.MethodPost, "/api/users", fiber.Map{
		"email":     "b@example.com",
		"firstName": "Bob",
		"lastName":  "Martin",
	})

	var u1, u2 models.User
	require.NoError(t, json.Unmarshal(first.Data, &u1))
	require.NoError(t, json.Unmarshal(second.Data, &u2))
	assert.NotEqual(t, u1.ID, u2.ID)
}

func TestGetUser_NotFound(t *testing.T) {
	resp, env := doRequest(t, http.MethodGet, "/api/users/00000000-0000-0000-0000-000000000000", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestListUsers_ReturnsEnvelopeWithArray(t *testing.T) {
	doRequest(t, http.MethodPost, "/api/users", fiber.Map{
		"email":     "list@example.com",
		"firstName": "Lisa",
		"lastName":  "Simpson",
	})

	resp, env := doRequest(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	var users []models.User
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.NotEmpty(t, users)
}

func TestCreateProduct_MissingRequiredFields(t *testing.T) {
	resp, env := doRequest(t, http.MethodPost, "/api/products", fiber.Map{
		"name": "Product",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Errors, "validation failures must include the violation list")
}

func TestCreateProduct_UnknownFieldRejected(t *testing.T) {
	resp, env := doRequest(t, http.MethodPost, "/api/products", fiber.Map{
		"name":        "Laptop",
		"description": "High performance laptop",
		"price":       1200.00,
		"discount":    0.5,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "unknown fields fail even when required fields are valid")
	assert.False(t, env.Success)
}

func TestProductLifecycle(t *testing.T) {
	resp, env := doRequest(t, http.MethodPost, "/api/products", fiber.Map{
		"name":        "Mouse",
		"description": "Ergonomic wireless mouse",
		"price":       25.00,
		"stock":       50,
		"category":    "Peripherals",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Product
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, created.IsAvailable)

	// Partial update changes only the supplied fields.
	resp, env = doRequest(t, http.MethodPatch, "/api/products/"+created.ID, fiber.Map{
		"stock":       30,
		"isAvailable": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Product
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 30, updated.Stock)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, "Mouse", updated.Name)
	assert.Equal(t, 25.00, updated.Price)
	assert.Equal(t, "Peripherals", updated.Category)

	// First delete succeeds with an empty 204.
	req := httptest.NewRequest(http.MethodDelete, "/api/products/"+created.ID, nil)
	rawResp, err := testApp.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rawResp.StatusCode)
	raw, _ := io.ReadAll(rawResp.Body)
	rawResp.Body.Close()
	assert.Empty(t, raw, "delete success has no body")

	// The identity is no longer resolvable.
	resp, _ = doRequest(t, http.MethodGet, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A second delete reports not found.
	resp, _ = doRequest(t, http.MethodDelete, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderFlow(t *testing.T) {
	resp, env := doRequest(t, http.MethodPost, "/api/orders", fiber.Map{
		"userId":      "123e4567-e89b-12d3-a456-426614174000",
		"productId":   "123e4567-e89b-12d3-a456-426614174001",
		"quantity":    2,
		"totalAmount": 199.98,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	var created models.Order
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", created.UserID)
	assert.Equal(t, 2, created.Quantity)
	assert.Equal(t, models.OrderStatusPending, created.Status)

	// PATCH moves status and quantity; everything else stays put.
	resp, env = doRequest(t, http.MethodPatch, "/api/orders/"+created.ID, fiber.Map{
		"status":   "delivered",
		"quantity": 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Order
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, created.UserID, updated.UserID)
	assert.Equal(t, created.ProductID, updated.ProductID)
	assert.Equal(t, created.TotalAmount, updated.TotalAmount)
}

func TestCreateOrder_InvalidUUIDReference(t *testing.T) {
	resp, env := doRequest(t, http.MethodPost, "/api/orders", fiber.Map{
		"userId":      "invalid-uuid",
		"productId":   "123e4567-e89b-12d3-a456-426614174001",
		"quantity":    1,
		"totalAmount": 10.0,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestUpdateOrder_InvalidStatusRejected(t *testing.T) {
	_, env := doRequest(t, http.MethodPost, "/api/orders", fiber.Map{
		"userId":      "123e4567-e89b-12d3-a456-426614174000",
		"productId":   "123e4567-e89b-12d3-a456-426614174001",
		"quantity":    1,
		"totalAmount": 10.0,
	})
	var created models.Order
	require.NoError(t, json.Unmarshal(env.Data, &created))

	resp, _ := doRequest(t, http.MethodPatch, "/api/orders/"+created.ID, fiber.Map{
		"status": "lost-in-transit",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateAndDelete_MissingOrder(t *testing.T) {
	resp, _ := doRequest(t, http.MethodPatch, "/api/orders/00000000-0000-0000-0000-000000000000", fiber.Map{
		"quantity": 5,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodDelete, "/api/orders/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := testApp.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
