package handlers

import (
	"net/http"

	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/businesses/:id/products/:product_id/stock-adjustments
func AdjustStock(c *gin.Context) {
	var req services.AdjustStockInput
	if !BindJSONOrError(c, &req) {
		return
	}
	movement, err := inventorySvc.Adjust(middleware.GetRequestContext(c), c.Param("id"), c.Param("product_id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "stock adjusted", "data": movement})
}

// GET /api/businesses/:id/products/:product_id/stock-movements
func GetStockMovements(c *gin.Context) {
	p := ParseListParams(c)
	items, total, err := inventorySvc.Movements(middleware.GetRequestContext(c), c.Param("id"), c.Param("product_id"), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "ok", items, pageMetaFor(p, total))
}
