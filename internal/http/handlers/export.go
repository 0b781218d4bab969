package handlers

import (
	"bytes"
	"net/http"

	"backoffice/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /api/products/export?business_id=...
// Accepts the same search/filters/sort parameters as the product list;
// pagination is ignored so the workbook covers everything.
func ExportProducts(c *gin.Context) {
	businessID := c.Query("business_id")
	if businessID == "" {
		RespondError(c, http.StatusBadRequest, "business_id is required", nil)
		return
	}

	var buf bytes.Buffer
	filename, err := exportSvc.ExportProducts(middleware.GetRequestContext(c), businessID, ParseListParams(c), &buf)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
