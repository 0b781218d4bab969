package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain/models"
	h "backoffice/internal/http/handlers"
	"backoffice/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, db *sql.DB) *gin.Engine {
	_ = db // handlers reach the pool through config; kept for future injection

	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.RequireAuth(env.JWTSecret), h.Me)

		// Business registration is the public entry point; everything
		// else requires a token.
		api.POST("/businesses/register", h.RegisterBusiness)

		authed := api.Group("", middleware.RequireAuth(env.JWTSecret))

		businesses := authed.Group("/businesses")
		businesses.GET("", h.GetBusinesses)
		businesses.GET("/my-businesses", h.GetMyBusinesses)
		businesses.GET("/:id", h.GetBusinessByID)
		businesses.PUT("/:id", h.UpdateBusiness)
		businesses.DELETE("/:id", h.DeleteBusiness)

		// Products live under the owning business.
		products := businesses.Group("/:id/products")
		products.GET("", h.GetProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:product_id", h.GetProductByID)
		products.PUT("/:product_id", h.UpdateProduct)
		products.DELETE("/:product_id", h.DeleteProduct)
		products.POST("/:product_id/stock-adjustments", h.AdjustStock)
		products.GET("/:product_id/stock-movements", h.GetStockMovements)

		authed.GET("/products/export", h.ExportProducts)

		// Master types are global reference data; writes are admin-only.
		masterTypes := authed.Group("/master-types")
		masterTypes.GET("", h.GetMasterTypes)
		masterTypes.GET("/:id", h.GetMasterTypeByID)
		adminOnly := middleware.RequireRole(models.RoleAdmin)
		masterTypes.POST("", adminOnly, h.CreateMasterType)
		masterTypes.PUT("/:id", adminOnly, h.UpdateMasterType)
		masterTypes.DELETE("/:id", adminOnly, h.DeleteMasterType)

		categories := authed.Group("/categories")
		categories.GET("", h.GetCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)

		categoryMarketplaces := authed.Group("/category-marketplaces")
		categoryMarketplaces.GET("", h.GetCategoryMarketplaces)
		categoryMarketplaces.GET("/:id", h.GetCategoryMarketplaceByID)
		categoryMarketplaces.POST("", h.CreateCategoryMarketplace)
		categoryMarketplaces.PUT("/:id", h.UpdateCategoryMarketplace)
		categoryMarketplaces.DELETE("/:id", h.DeleteCategoryMarketplace)

		orderSecrets := authed.Group("/order-secrets")
		orderSecrets.GET("", h.GetOrderSecrets)
		orderSecrets.GET("/:order_secret_id", h.GetOrderSecretByID)
		orderSecrets.POST("", h.CreateOrderSecret)
		orderSecrets.PUT("/:order_secret_id", h.UpdateOrderSecret)
		orderSecrets.DELETE("/:order_secret_id", h.DeleteOrderSecret)
	}

	return r
}
