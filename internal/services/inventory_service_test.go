package services

import (
	"testing"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

type stockFixture struct {
	userID     uuid.UUID
	businessID uuid.UUID
	productID  uuid.UUID
	rc         domain.RequestContext
}

func newStockFixture() stockFixture {
	userID := uuid.New()
	return stockFixture{
		userID:     userID,
		businessID: uuid.New(),
		productID:  uuid.New(),
		rc:         domain.RequestContext{UserID: userID.String(), Email: "budi@kopisenja.id", Role: "merchant"},
	}
}

func (f stockFixture) businessRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "business_code", "business_name", "shop_name", "name_owner", "phone", "email",
		"address", "user_id", "business_type_id", "status",
		"created_at", "created_by", "updated_at", "updated_by",
	}).AddRow(f.businessID, "BIZ000000000001", "Kopi Senja", "Kopi Senja Shop", "Budi", "0812", "shop@kopisenja.id",
		nil, f.userID, uuid.New(), "trial", time.Now(), nil, nil, nil)
}

func (f stockFixture) productRow(qty int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "product_code", "product_sequence", "user_id", "business_id", "category_id",
		"name", "slug", "description", "product_type", "base_price", "selling_price",
		"track_inventory", "qty", "min_stock", "max_stock", "sku",
		"weight", "length", "width", "height",
		"is_active", "is_featured", "is_synced_to_marketplace",
		"created_at", "created_by", "updated_at", "updated_by",
	}).AddRow(f.productID, "BIZ000000000001-PROD-0001", 1, f.userID, f.businessID, nil,
		"Kopi Susu", "kopi-susu", nil, models.ProductTypeSimple, 10000.0, 15000.0,
		true, qty, nil, nil, "SKU-BIZ000000000001-PROD-0001",
		nil, nil, nil, nil,
		true, false, false,
		time.Now(), nil, nil, nil)
}

func TestAdjustStockInMovesLedgerAndQtyTogether(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	f := newStockFixture()

	mock.ExpectQuery("SELECT (.+) FROM businesses").WithArgs(f.businessID, f.userID).
		WillReturnRows(f.businessRow())
	mock.ExpectQuery("SELECT (.+) FROM products").WithArgs(f.productID, f.businessID).
		WillReturnRows(f.productRow(10))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE\\(qty, 0\\) FROM products").
		WithArgs(f.productID).
		WillReturnRows(sqlmock.NewRows([]string{"qty"}).AddRow(10))
	mock.ExpectQuery("INSERT INTO stock_movements").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("UPDATE products").
		WithArgs(15, f.rc.UserID, f.productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := InventoryService{
		ProductRepo: repositories.ProductRepository{DB: db},
		VariantRepo: repositories.VariantRepository{DB: db},
		StockRepo:   repositories.StockRepository{DB: db},
		Products: ProductService{
			ProductRepo:  repositories.ProductRepository{DB: db},
			BusinessRepo: repositories.BusinessRepository{DB: db},
			DB:           db,
		},
		DB: db,
	}

	movement, err := svc.Adjust(f.rc, f.businessID.String(), f.productID.String(), AdjustStockInput{
		MovementType: "IN",
		Quantity:     5,
	})
	if err != nil {
		t.Fatalf("Adjust error: %v", err)
	}
	if movement.QtyBefore != 10 || movement.QtyAfter != 15 {
		t.Fatalf("ledger snapshot = %d -> %d, want 10 -> 15", movement.QtyBefore, movement.QtyAfter)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdjustStockOutRejectsOverdraw(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	f := newStockFixture()

	mock.ExpectQuery("SELECT (.+) FROM businesses").WithArgs(f.businessID, f.userID).
		WillReturnRows(f.businessRow())
	mock.ExpectQuery("SELECT (.+) FROM products").WithArgs(f.productID, f.businessID).
		WillReturnRows(f.productRow(3))

	// Overdraw is detected under the row lock, so the transaction
	// opens and rolls back without touching the ledger.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE\\(qty, 0\\) FROM products").
		WithArgs(f.productID).
		WillReturnRows(sqlmock.NewRows([]string{"qty"}).AddRow(3))
	mock.ExpectRollback()

	svc := InventoryService{
		ProductRepo: repositories.ProductRepository{DB: db},
		VariantRepo: repositories.VariantRepository{DB: db},
		StockRepo:   repositories.StockRepository{DB: db},
		Products: ProductService{
			ProductRepo:  repositories.ProductRepository{DB: db},
			BusinessRepo: repositories.BusinessRepository{DB: db},
			DB:           db,
		},
		DB: db,
	}

	_, err = svc.Adjust(f.rc, f.businessID.String(), f.productID.String(), AdjustStockInput{
		MovementType: "OUT",
		Quantity:     5,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdjustStockSnapshotsQtyUnderRowLock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	f := newStockFixture()

	mock.ExpectQuery("SELECT (.+) FROM businesses").WithArgs(f.businessID, f.userID).
		WillReturnRows(f.businessRow())
	mock.ExpectQuery("SELECT (.+) FROM products").WithArgs(f.productID, f.businessID).
		WillReturnRows(f.productRow(10))

	// A concurrent movement committed between the product load and the
	// transaction, so the locked read sees 7, not the stale 10.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE\\(qty, 0\\) FROM products").
		WithArgs(f.productID).
		WillReturnRows(sqlmock.NewRows([]string{"qty"}).AddRow(7))
	mock.ExpectQuery("INSERT INTO stock_movements").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("UPDATE products").
		WithArgs(12, f.rc.UserID, f.productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := InventoryService{
		ProductRepo: repositories.ProductRepository{DB: db},
		VariantRepo: repositories.VariantRepository{DB: db},
		StockRepo:   repositories.StockRepository{DB: db},
		Products: ProductService{
			ProductRepo:  repositories.ProductRepository{DB: db},
			BusinessRepo: repositories.BusinessRepository{DB: db},
			DB:           db,
		},
		DB: db,
	}

	movement, err := svc.Adjust(f.rc, f.businessID.String(), f.productID.String(), AdjustStockInput{
		MovementType: "IN",
		Quantity:     5,
	})
	if err != nil {
		t.Fatalf("Adjust error: %v", err)
	}
	if movement.QtyBefore != 7 || movement.QtyAfter != 12 {
		t.Fatalf("ledger snapshot = %d -> %d, want 7 -> 12", movement.QtyBefore, movement.QtyAfter)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdjustStockRejectsUnknownMovementType(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	f := newStockFixture()

	mock.ExpectQuery("SELECT (.+) FROM businesses").WithArgs(f.businessID, f.userID).
		WillReturnRows(f.businessRow())
	mock.ExpectQuery("SELECT (.+) FROM products").WithArgs(f.productID, f.businessID).
		WillReturnRows(f.productRow(3))

	svc := InventoryService{
		ProductRepo: repositories.ProductRepository{DB: db},
		VariantRepo: repositories.VariantRepository{DB: db},
		StockRepo:   repositories.StockRepository{DB: db},
		Products: ProductService{
			ProductRepo:  repositories.ProductRepository{DB: db},
			BusinessRepo: repositories.BusinessRepository{DB: db},
			DB:           db,
		},
		DB: db,
	}

	_, err = svc.Adjust(f.rc, f.businessID.String(), f.productID.String(), AdjustStockInput{
		MovementType: "SIDEWAYS",
		Quantity:     1,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
