package routes

import (
	"catalog-backend/handlers"
	"catalog-backend/middleware"
	"catalog-backend/models"
	"catalog-backend/services"
	"catalog-backend/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, store storage.Storage) {
	categoryRepo := models.NewCategoryRepository(db)
	productRepo := models.NewProductRepository(db)

	categoryService := services.NewCategoryService(categoryRepo, productRepo, store)
	productService := services.NewProductService(productRepo, categoryRepo, store)

	authHandler := &handlers.AuthHandler{DB: db}
	categoryHandler := &handlers.CategoryHandler{Service: categoryService, Storage: store}
	productHandler := &handlers.ProductHandler{Service: productService, Storage: store}

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/recent", categoryHandler.GetRecentCategories)
		api.GET("/categories/active", categoryHandler.GetActiveCategories)
		api.GET("/categories/:id", categoryHandler.GetCategory)
		api.GET("/categories/:id/products/count", productHandler.CountByCategory)

		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.GetProfile)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		// Category management
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)
		admin.PATCH("/categories/:id/status", categoryHandler.ToggleCategoryStatus)
		admin.PATCH("/categories/:id/restore", categoryHandler.RestoreCategory)
		admin.GET("/categories/stats", categoryHandler.GetCategoryStats)

		// Product management
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)
		admin.PATCH("/products/:id/status", productHandler.ToggleProductStatus)
		admin.PATCH("/products/:id/soft-delete", productHandler.SoftDeleteProduct)
		admin.PATCH("/products/:id/restore", productHandler.RestoreProduct)
		admin.GET("/products/stats", productHandler.GetProductStats)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
