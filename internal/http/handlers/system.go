package handlers

import (
	"net/http"

	intconfig "backoffice/internal/config"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler-level services; zero values fall back to the shared pool.
var (
	authSvc                services.AuthService
	businessSvc            services.BusinessService
	masterTypeSvc          services.MasterTypeService
	categorySvc            services.CategoryService
	categoryMarketplaceSvc services.CategoryMarketplaceService
	orderSecretSvc         services.OrderSecretService
	productSvc             services.ProductService
	inventorySvc           services.InventoryService
	exportSvc              services.ExportService
)

// Configure wires the handler services from the environment. Call once
// before mounting routes.
func Configure(env intconfig.Env) {
	authSvc = services.AuthService{JWTSecret: env.JWTSecret, TokenTTL: env.TokenTTL}
	businessSvc = services.BusinessService{}
	masterTypeSvc = services.MasterTypeService{}
	categorySvc = services.CategoryService{}
	categoryMarketplaceSvc = services.CategoryMarketplaceService{}
	orderSecretSvc = services.OrderSecretService{}
	productSvc = services.ProductService{}
	inventorySvc = services.InventoryService{}
	exportSvc = services.ExportService{}
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "backoffice is running"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected"})
		return
	}
	var count int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "users_in_db": count})
}
