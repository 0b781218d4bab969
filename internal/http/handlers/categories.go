package handlers

import (
	"net/http"

	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/categories
func GetCategories(c *gin.Context) {
	p := ParseListParams(c)
	items, total, err := categorySvc.List(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "ok", items, pageMetaFor(p, total))
}

// GET /api/categories/:id
func GetCategoryByID(c *gin.Context) {
	cat, err := categorySvc.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok", "data": cat})
}

// POST /api/categories
func CreateCategory(c *gin.Context) {
	var req services.CategoryInput
	if !BindJSONOrError(c, &req) {
		return
	}
	cat, err := categorySvc.Create(middleware.GetRequestContext(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "category created", "data": cat})
}

// PUT /api/categories/:id
func UpdateCategory(c *gin.Context) {
	var req services.CategoryInput
	if !BindJSONOrError(c, &req) {
		return
	}
	cat, err := categorySvc.Update(middleware.GetRequestContext(c), c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category updated", "data": cat})
}

// DELETE /api/categories/:id
func DeleteCategory(c *gin.Context) {
	if err := categorySvc.Delete(middleware.GetRequestContext(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
