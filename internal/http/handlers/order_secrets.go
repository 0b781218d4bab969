package handlers

import (
	"net/http"

	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/order-secrets
func GetOrderSecrets(c *gin.Context) {
	p := ParseListParams(c)
	items, total, err := orderSecretSvc.List(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "ok", items, pageMetaFor(p, total))
}

// GET /api/order-secrets/:order_secret_id
func GetOrderSecretByID(c *gin.Context) {
	os, err := orderSecretSvc.Get(c.Param("order_secret_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok", "data": os})
}

// POST /api/order-secrets
func CreateOrderSecret(c *gin.Context) {
	var req services.OrderSecretInput
	if !BindJSONOrError(c, &req) {
		return
	}
	os, err := orderSecretSvc.Create(middleware.GetRequestContext(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "order secret created", "data": os})
}

// PUT /api/order-secrets/:order_secret_id
func UpdateOrderSecret(c *gin.Context) {
	var req services.OrderSecretInput
	if !BindJSONOrError(c, &req) {
		return
	}
	os, err := orderSecretSvc.Update(middleware.GetRequestContext(c), c.Param("order_secret_id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order secret updated", "data": os})
}

// DELETE /api/order-secrets/:order_secret_id
func DeleteOrderSecret(c *gin.Context) {
	if err := orderSecretSvc.Delete(middleware.GetRequestContext(c), c.Param("order_secret_id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order secret deleted"})
}
