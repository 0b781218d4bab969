package handlers

import (
	"net/http"

	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/businesses/register
func RegisterBusiness(c *gin.Context) {
	var req services.RegisterBusinessInput
	if !BindJSONOrError(c, &req) {
		return
	}
	result, err := businessSvc.Register(middleware.GetRequestID(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "business registered", "data": result})
}

// GET /api/businesses
func GetBusinesses(c *gin.Context) {
	p := ParseListParams(c)
	items, total, err := businessSvc.List(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "ok", items, pageMetaFor(p, total))
}

// GET /api/businesses/my-businesses
func GetMyBusinesses(c *gin.Context) {
	items, err := businessSvc.ListMine(middleware.GetRequestContext(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok", "data": items})
}

// GET /api/businesses/:id
func GetBusinessByID(c *gin.Context) {
	b, err := businessSvc.Get(middleware.GetRequestContext(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok", "data": b})
}

// PUT /api/businesses/:id
func UpdateBusiness(c *gin.Context) {
	var req services.UpdateBusinessInput
	if !BindJSONOrError(c, &req) {
		return
	}
	b, err := businessSvc.Update(middleware.GetRequestContext(c), c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "business updated", "data": b})
}

// DELETE /api/businesses/:id
func DeleteBusiness(c *gin.Context) {
	if err := businessSvc.Delete(middleware.GetRequestContext(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "business deleted"})
}
