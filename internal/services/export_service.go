package services

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"

	"github.com/xuri/excelize/v2"
)

type ExportService struct {
	Products ProductService
	DB       *sql.DB
}

func (s ExportService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ExportService) productSvc() ProductService {
	if s.Products.DB != nil {
		return s.Products
	}
	return ProductService{DB: s.db()}
}

var productExportHeader = []any{
	"Product Code", "Name", "SKU", "Type", "Category ID",
	"Base Price", "Selling Price", "Qty", "Active", "Featured", "Created At",
}

// ExportProducts writes the product list as an XLSX workbook. The same
// search/filter/sort parameters as the list endpoint apply; pagination
// is ignored so the export always covers the full result set.
func (s ExportService) ExportProducts(rc domain.RequestContext, businessID string, p domain.ListParams, w io.Writer) (string, error) {
	p.Page, p.PerPage = 0, 0
	items, _, err := s.productSvc().List(rc, businessID, p)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	f.SetSheetName("Sheet1", sheet)
	if err := f.SetSheetRow(sheet, "A1", &productExportHeader); err != nil {
		return "", domain.InternalError{Err: err}
	}

	for i, pr := range items {
		sku := ""
		if pr.SKU != nil {
			sku = *pr.SKU
		}
		var categoryID any
		if pr.CategoryID != nil {
			categoryID = *pr.CategoryID
		}
		var qty any
		if pr.Qty != nil {
			qty = *pr.Qty
		}
		row := []any{
			pr.ProductCode, pr.Name, sku, pr.ProductType, categoryID,
			pr.BasePrice, pr.SellingPrice, qty, pr.IsActive, pr.IsFeatured,
			pr.CreatedAt.Format(time.RFC3339),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", domain.InternalError{Err: err}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return "", domain.InternalError{Err: err}
	}
	return fmt.Sprintf("products-%s.xlsx", time.Now().Format("20060102-150405")), nil
}
