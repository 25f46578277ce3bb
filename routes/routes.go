package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rleomotos-api/config"
	"rleomotos-api/controllers"
	"rleomotos-api/middleware"
	"rleomotos-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Services
	tokenService := services.NewTokenService(cfg)
	userService := services.NewUserService(db)
	authService := services.NewAuthService(db, userService, tokenService)
	motorcycleService := services.NewMotorcycleService(db)
	inventoryService := services.NewInventoryService(db)
	emailService := services.NewEmailService(cfg)

	// Controllers
	authController := controllers.NewAuthController(authService, emailService)
	userController := controllers.NewUserController(userService)
	storeController := controllers.NewStoreController(db)
	brandController := controllers.NewBrandController(db)
	motorcycleController := controllers.NewMotorcycleController(motorcycleService, cfg.UploadDir)
	inventoryController := controllers.NewInventoryController(inventoryService)

	// Uploaded photos are served directly
	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Auth routes (public except logout), rate limited per IP
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(30, 10))
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", middleware.AuthRequired(tokenService), authController.Logout)
	}

	// Everything below requires a valid access token; reads are open to
	// admin and viewer, mutations to admin only.
	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(tokenService))

	readRoles := middleware.RequireRoles("admin", "viewer")
	writeRoles := middleware.RequireRoles("admin")

	stores := protected.Group("/stores")
	{
		stores.GET("", readRoles, storeController.List)
		stores.GET("/:id", readRoles, storeController.Get)
		stores.POST("", writeRoles, storeController.Create)
		stores.PUT("/:id", writeRoles, storeController.Update)
		stores.DELETE("/:id", writeRoles, storeController.Delete)
	}

	brands := protected.Group("/brands")
	{
		brands.GET("", readRoles, brandController.List)
		brands.GET("/:id", readRoles, brandController.Get)
		brands.POST("", writeRoles, brandController.Create)
		brands.PUT("/:id", writeRoles, brandController.Update)
		brands.DELETE("/:id", writeRoles, brandController.Delete)
	}

	users := protected.Group("/users")
	{
		users.GET("", readRoles, userController.List)
		users.GET("/:id", readRoles, userController.Get)
		users.POST("", writeRoles, userController.Create)
		users.PUT("/:id", writeRoles, userController.Update)
		users.DELETE("/:id", writeRoles, userController.Delete)
	}

	motorcycles := protected.Group("/motorcycles")
	{
		motorcycles.GET("", readRoles, motorcycleController.List)
		motorcycles.GET("/:id", readRoles, motorcycleController.Get)
		motorcycles.POST("", writeRoles, motorcycleController.Create)
		motorcycles.PUT("/:id", writeRoles, motorcycleController.Update)
		motorcycles.DELETE("/:id", writeRoles, motorcycleController.Delete)
		motorcycles.POST("/:id/photos", writeRoles, motorcycleController.AddPhotos)
		motorcycles.DELETE("/:id/photos/:photoId", writeRoles, motorcycleController.RemovePhoto)
	}

	inventory := protected.Group("/inventory")
	{
		inventory.GET("/summary", readRoles, inventoryController.Summary)
		inventory.GET("/missing", readRoles, inventoryController.Missing)
	}
}
