package handlers

import (
	"net/http"

	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/master-types
func GetMasterTypes(c *gin.Context) {
	p := ParseListParams(c)
	items, total, err := masterTypeSvc.List(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "ok", items, pageMetaFor(p, total))
}

// GET /api/master-types/:id
func GetMasterTypeByID(c *gin.Context) {
	mt, err := masterTypeSvc.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok", "data": mt})
}

// POST /api/master-types
func CreateMasterType(c *gin.Context) {
	var req services.MasterTypeInput
	if !BindJSONOrError(c, &req) {
		return
	}
	mt, err := masterTypeSvc.Create(middleware.GetRequestContext(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "master type created", "data": mt})
}

// PUT /api/master-types/:id
func UpdateMasterType(c *gin.Context) {
	var req services.MasterTypeInput
	if !BindJSONOrError(c, &req) {
		return
	}
	mt, err := masterTypeSvc.Update(middleware.GetRequestContext(c), c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "master type updated", "data": mt})
}

// DELETE /api/master-types/:id
func DeleteMasterType(c *gin.Context) {
	if err := masterTypeSvc.Delete(middleware.GetRequestContext(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "master type deleted"})
}
