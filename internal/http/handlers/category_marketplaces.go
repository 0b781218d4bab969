package handlers

import (
	"net/http"

	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/category-marketplaces
func GetCategoryMarketplaces(c *gin.Context) {
	p := ParseListParams(c)
	items, total, err := categoryMarketplaceSvc.List(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "ok", items, pageMetaFor(p, total))
}

// GET /api/category-marketplaces/:id
func GetCategoryMarketplaceByID(c *gin.Context) {
	cm, err := categoryMarketplaceSvc.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok", "data": cm})
}

// POST /api/category-marketplaces
func CreateCategoryMarketplace(c *gin.Context) {
	var req services.CategoryInput
	if !BindJSONOrError(c, &req) {
		return
	}
	cm, err := categoryMarketplaceSvc.Create(middleware.GetRequestContext(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "marketplace category created", "data": cm})
}

// PUT /api/category-marketplaces/:id
func UpdateCategoryMarketplace(c *gin.Context) {
	var req services.CategoryInput
	if !BindJSONOrError(c, &req) {
		return
	}
	cm, err := categoryMarketplaceSvc.Update(middleware.GetRequestContext(c), c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marketplace category updated", "data": cm})
}

// DELETE /api/category-marketplaces/:id
func DeleteCategoryMarketplace(c *gin.Context) {
	if err := categoryMarketplaceSvc.Delete(middleware.GetRequestContext(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marketplace category deleted"})
}
