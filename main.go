// File: /main.go
package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"sportsync-api/config"
	"sportsync-api/database"
	"sportsync-api/jobs"
	"sportsync-api/middleware"
	"sportsync-api/repositories"
	"sportsync-api/routes"
	"sportsync-api/services"
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

	// Wire the notification stack
	mailer := services.NewSMTPMailer(cfg)
	resolver := services.NewRecipientResolver(repositories.NewUserRepository(db))
	notifications := services.NewNotificationService(resolver, mailer)

	// Start the 24-hour reminder sweep
	reminderJob, err := jobs.NewReminderJob(
		repositories.NewActivityRepository(db),
		notifications,
		cfg.TimeZone,
		cfg.ReminderInterval,
	)
	if err != nil {
		log.Fatal("Failed to create reminder job:", err)
	}
	reminderJob.Start()
	defer reminderJob.Stop()

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.Default()

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Security headers and request logging
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestLogger())

	// Rate limiting
	router.Use(middleware.RateLimit(120, 20))

	// Setup routes
	routes.SetupRoutes(router, db, cfg, notifications)

	// Start server
	log.Printf("Starting SportSync API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
