// File: /main.go
package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"gatherly-api/config"
	"gatherly-api/database"
	"gatherly-api/jobs"
	"gatherly-api/middleware"
	"gatherly-api/routes"
	"gatherly-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Shared services owned by main
	codeStore := services.NewMemoryCodeStore(time.Minute)
	defer codeStore.Stop()
	emailService := services.NewEmailService(cfg, codeStore)
	chatHub := services.NewChatHub()

	// Background jobs
	notificationService := services.NewNotificationService(db)
	scheduler := jobs.NewScheduler(db, notificationService)
	if err := scheduler.Add(jobs.KindEventReminder, time.Hour); err != nil {
		log.Fatal("Failed to schedule event reminders:", err)
	}
	if err := scheduler.Add(jobs.KindNotificationCleanup, 24*time.Hour); err != nil {
		log.Fatal("Failed to schedule notification cleanup:", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(300, 30))

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService, chatHub)

	// Start server
	log.Printf("Starting Gatherly API server on port %s", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
