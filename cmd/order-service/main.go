package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

func main() {
	cfg := config.Load("order-service", ":3003")

	var orderRepo repositories.OrderRepository
	if cfg.DatabaseDSN != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.Order{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		orderRepo = repositories.NewGORMOrderRepository(db)
	} else {
		log.Println("DATABASE_DSN not set, using in-memory repository")
		orderRepo = repositories.NewMockOrderRepository()
	}

	// Event publishing is optional; without a broker URL the service runs
	// with publishing disabled.
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, event publishing disabled")
	}

	orderService := services.NewOrderService(orderRepo, publisher)
	orderHandler := handlers.NewOrderHandler(orderService)

	fiberApp := app.New(cfg, orderHandler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Order service listening on %s", cfg.Port)
		if err := fiberApp.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down order service...")
	if err := fiberApp.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Order service stopped")
}
