package services

import (
	"testing"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateProductMintsCodesInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	f := newStockFixture()

	mock.ExpectQuery("SELECT (.+) FROM businesses").WithArgs(f.businessID, f.userID).
		WillReturnRows(f.businessRow())
	// Slug uniqueness check.
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
		WithArgs(f.businessID, "kopi-susu").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(product_sequence\\), 0\\)").WithArgs(f.businessID).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(7))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
		WithArgs(f.businessID, "SKU-BIZ000000000001-PROD-0007").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("INSERT INTO products").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectQuery("INSERT INTO product_variants").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	// Second variant carries an explicit SKU, so it is checked for
	// uniqueness before the insert.
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM product_variants").
		WithArgs("KS-500").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("INSERT INTO product_variants").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	svc := ProductService{
		ProductRepo:  repositories.ProductRepository{DB: db},
		VariantRepo:  repositories.VariantRepository{DB: db},
		BusinessRepo: repositories.BusinessRepository{DB: db},
		CategoryRepo: repositories.CategoryRepository{DB: db},
		DB:           db,
	}

	p, err := svc.Create(f.rc, CreateProductInput{
		BusinessID:   f.businessID.String(),
		Name:         "Kopi Susu",
		BasePrice:    10000,
		SellingPrice: 15000,
		Variants: []VariantInput{
			{VariantName: "250ml", Qty: 10},
			{VariantName: "500ml", Qty: 5, SKU: "KS-500"},
		},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if p.ProductCode != "BIZ000000000001-PROD-0007" {
		t.Fatalf("product code = %q", p.ProductCode)
	}
	if p.SKU == nil || *p.SKU != "SKU-BIZ000000000001-PROD-0007" {
		t.Fatalf("sku fallback = %v", p.SKU)
	}
	if p.ProductType != models.ProductTypeVariable {
		t.Fatalf("product type = %q, want VARIABLE", p.ProductType)
	}
	if p.Qty != nil {
		t.Fatalf("variable product should keep stock on variants, got qty %v", *p.Qty)
	}
	if len(p.Variants) != 2 {
		t.Fatalf("variants = %d, want 2", len(p.Variants))
	}
	if p.Variants[0].VariantCode != "BIZ000000000001-PROD-0007-VAR-0001" {
		t.Fatalf("variant code = %q", p.Variants[0].VariantCode)
	}
	if p.Variants[0].SKU != "SKU-BIZ000000000001-PROD-0007-VAR-0001" {
		t.Fatalf("variant sku fallback = %q", p.Variants[0].SKU)
	}
	if p.Variants[1].SKU != "KS-500" {
		t.Fatalf("explicit variant sku = %q", p.Variants[1].SKU)
	}
	if !p.Variants[0].IsDefault || p.Variants[1].IsDefault {
		t.Fatalf("first variant should default when none marked")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateProductRejectsDuplicateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	f := newStockFixture()

	mock.ExpectQuery("SELECT (.+) FROM businesses").WithArgs(f.businessID, f.userID).
		WillReturnRows(f.businessRow())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
		WithArgs(f.businessID, "kopi-susu").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	svc := ProductService{
		ProductRepo:  repositories.ProductRepository{DB: db},
		BusinessRepo: repositories.BusinessRepository{DB: db},
		DB:           db,
	}

	_, err = svc.Create(f.rc, CreateProductInput{
		BusinessID:   f.businessID.String(),
		Name:         "Kopi Susu",
		BasePrice:    1,
		SellingPrice: 2,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	f := newStockFixture()
	mock.ExpectQuery("SELECT (.+) FROM businesses").WithArgs(f.businessID, f.userID).
		WillReturnRows(f.businessRow())

	svc := ProductService{
		BusinessRepo: repositories.BusinessRepository{DB: db},
		DB:           db,
	}
	_, err = svc.Create(f.rc, CreateProductInput{
		BusinessID:   f.businessID.String(),
		Name:         "Kopi",
		BasePrice:    -1,
		SellingPrice: 2,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
