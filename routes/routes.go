// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"sportsync-api/config"
	"sportsync-api/controllers"
	"sportsync-api/middleware"
	"sportsync-api/repositories"
	"sportsync-api/services"
)

// SetupCORS returns the CORS middleware used on every route
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, notifications *services.NotificationService) {
	// Repositories
	activityRepo := repositories.NewActivityRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Controllers
	authController := controllers.NewAuthController(userRepo, cfg.JWTSecret)
	userController := controllers.NewUserController(userRepo)
	activityController := controllers.NewActivityController(activityRepo, notifications)
	dashboardController := controllers.NewDashboardController(activityRepo)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Public read-only REST endpoints
	v1.GET("/activities", activityController.GetActivities)
	v1.GET("/activities/:id", activityController.GetActivity)
	v1.GET("/dashboard/stats", dashboardController.GetStats)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
		}

		// Activity routes
		activities := protected.Group("/activities")
		{
			activities.POST("/", activityController.CreateActivity)
			activities.PUT("/:id", activityController.UpdateActivity)
			activities.DELETE("/:id", activityController.DeleteActivity)
			activities.POST("/:id/cancel", activityController.CancelActivity)
			activities.POST("/:id/join", activityController.JoinActivity)
			activities.DELETE("/:id/leave", activityController.LeaveActivity)
			activities.POST("/:id/rate", activityController.RateActivity)
			activities.GET("/joined", activityController.GetJoinedActivities)
			activities.GET("/created", activityController.GetCreatedActivities)
		}
	}
}
