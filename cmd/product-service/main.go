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
)

func main() {
	cfg := config.Load("product-service", ":3002")

	var productRepo repositories.ProductRepository
	if cfg.DatabaseDSN != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.Product{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		productRepo = repositories.NewGORMProductRepository(db)
	} else {
		log.Println("DATABASE_DSN not set, using in-memory repository")
		productRepo = repositories.NewMockProductRepository()
	}

	productService := services.NewProductService(productRepo)
	productHandler := handlers.NewProductHandler(productService)

	fiberApp := app.New(cfg, productHandler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Product service listening on %s", cfg.Port)
		if err := fiberApp.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down product service...")
	if err := fiberApp.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Product service stopped")
}
