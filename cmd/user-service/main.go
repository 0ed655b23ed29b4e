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
	cfg := config.Load("user-service", ":3001")

	// Without a DSN the service runs against the in-memory repository,
	// which is enough for local development.
	var userRepo repositories.UserRepository
	if cfg.DatabaseDSN != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		userRepo = repositories.NewGORMUserRepository(db)
	} else {
		log.Println("DATABASE_DSN not set, using in-memory repository")
		userRepo = repositories.NewMockUserRepository()
	}

	userService := services.NewUserService(userRepo)
	userHandler := handlers.NewUserHandler(userService)

	fiberApp := app.New(cfg, userHandler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("User service listening on %s", cfg.Port)
		if err := fiberApp.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down user service...")
	if err := fiberApp.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("User service stopped")
}
