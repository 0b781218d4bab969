package handlers

import (
	"net/http"

	"backoffice/internal/http/middleware"
	"backoffice/internal/query"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// RespondList shapes the shared list envelope; meta is present only on
// paginated requests.
func RespondList(c *gin.Context, message string, data any, meta *query.PageMeta) {
	payload := gin.H{"message": message, "data": data}
	if meta != nil {
		payload["meta"] = meta
	}
	c.JSON(http.StatusOK, payload)
}
