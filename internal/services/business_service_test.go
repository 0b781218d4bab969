package services

import (
	"database/sql"
	"testing"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func masterTypeRow(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "group_code", "code", "name", "description", "is_active",
		"created_at", "created_by", "updated_at", "updated_by",
	}).AddRow(id, "BUSINESS", "RETAIL", "Retail", nil, true, time.Now(), nil, nil, nil)
}

func registerInput(typeID uuid.UUID) RegisterBusinessInput {
	return RegisterBusinessInput{
		BusinessName:   "Kopi Senja",
		ShopName:       "Kopi Senja Shop",
		NameOwner:      "Budi",
		Phone:          "0812",
		Email:          "shop@kopisenja.id",
		BusinessTypeID: typeID.String(),
		UserName:       "Budi",
		UserEmail:      "budi@kopisenja.id",
		UserUsername:   "budi",
		UserPassword:   "secret-password",
	}
}

func TestBusinessRegisterCommitsOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	typeID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM master_types").WithArgs(typeID).
		WillReturnRows(masterTypeRow(typeID))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
		WithArgs("budi@kopisenja.id", "budi").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectQuery("UPDATE naming_series").WithArgs("BIZ").
		WillReturnRows(sqlmock.NewRows([]string{"last_number", "padding_length"}).AddRow(1, 12))
	mock.ExpectQuery("INSERT INTO businesses").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	svc := BusinessService{
		BusinessRepo:   repositories.BusinessRepository{DB: db},
		UserRepo:       repositories.UserRepository{DB: db},
		MasterTypeRepo: repositories.MasterTypeRepository{DB: db},
		DB:             db,
	}

	result, err := svc.Register("test-req", registerInput(typeID))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if result.Business.BusinessCode != "BIZ000000000001" {
		t.Fatalf("business code = %q, want BIZ000000000001", result.Business.BusinessCode)
	}
	if result.User.Role != "merchant" {
		t.Fatalf("user role = %q, want merchant", result.User.Role)
	}
	if result.Business.Status != "trial" {
		t.Fatalf("status = %q, want trial", result.Business.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBusinessRegisterRollsBackOnTakenUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	typeID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM master_types").WithArgs(typeID).
		WillReturnRows(masterTypeRow(typeID))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
		WithArgs("budi@kopisenja.id", "budi").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	svc := BusinessService{
		BusinessRepo:   repositories.BusinessRepository{DB: db},
		UserRepo:       repositories.UserRepository{DB: db},
		MasterTypeRepo: repositories.MasterTypeRepository{DB: db},
		DB:             db,
	}

	_, err = svc.Register("test-req", registerInput(typeID))
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBusinessRegisterRejectsUnknownType(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	typeID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM master_types").WithArgs(typeID).
		WillReturnError(sql.ErrNoRows)

	svc := BusinessService{
		BusinessRepo:   repositories.BusinessRepository{DB: db},
		UserRepo:       repositories.UserRepository{DB: db},
		MasterTypeRepo: repositories.MasterTypeRepository{DB: db},
		DB:             db,
	}

	_, err = svc.Register("test-req", registerInput(typeID))
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBusinessRegisterValidatesInput(t *testing.T) {
	svc := BusinessService{DB: nil}

	in := registerInput(uuid.New())
	in.UserPassword = "short"
	if _, err := svc.Register("test-req", in); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}

	in = registerInput(uuid.New())
	in.BusinessName = "  "
	if _, err := svc.Register("test-req", in); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}

	in = registerInput(uuid.New())
	in.BusinessTypeID = "not-a-uuid"
	if _, err := svc.Register("test-req", in); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for bad type id, got %v", err)
	}
}
