package handlers

import (
	"net/http"

	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/businesses/:id/products
func CreateProduct(c *gin.Context) {
	var req services.CreateProductInput
	if !BindJSONOrError(c, &req) {
		return
	}
	req.BusinessID = c.Param("id")
	p, err := productSvc.Create(middleware.GetRequestContext(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "product created", "data": p})
}

// GET /api/businesses/:id/products
func GetProducts(c *gin.Context) {
	p := ParseListParams(c)
	items, total, err := productSvc.List(middleware.GetRequestContext(c), c.Param("id"), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "ok", items, pageMetaFor(p, total))
}

// GET /api/businesses/:id/products/:product_id
func GetProductByID(c *gin.Context) {
	p, err := productSvc.Get(middleware.GetRequestContext(c), c.Param("id"), c.Param("product_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok", "data": p})
}

// PUT /api/businesses/:id/products/:product_id
func UpdateProduct(c *gin.Context) {
	var req services.UpdateProductInput
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := productSvc.Update(middleware.GetRequestContext(c), c.Param("id"), c.Param("product_id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product updated", "data": p})
}

// DELETE /api/businesses/:id/products/:product_id
func DeleteProduct(c *gin.Context) {
	err := productSvc.Delete(middleware.GetRequestContext(c), c.Param("id"), c.Param("product_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
