package services

import (
	"testing"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func userRow(id uuid.UUID, hash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "username", "password", "role", "created_at", "updated_at"}).
		AddRow(id, "Budi", "budi@kopisenja.id", "budi", hash, "merchant", time.Now(), nil)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	userID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM users").WithArgs("budi").
		WillReturnRows(userRow(userID, string(hash)))

	svc := AuthService{
		UserRepo:  repositories.UserRepository{DB: db},
		DB:        db,
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}

	result, err := svc.Login(LoginInput{Identifier: "Budi", Password: "secret-password"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if result.TokenType != "bearer" || result.ExpiresIn != 3600 {
		t.Fatalf("token envelope mismatch: %+v", result)
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(result.AccessToken, claims, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["sub"] != userID.String() {
		t.Fatalf("sub = %v, want %s", claims["sub"], userID)
	}
	if claims["role"] != "merchant" {
		t.Fatalf("role = %v, want merchant", claims["role"])
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	mock.ExpectQuery("SELECT (.+) FROM users").WithArgs("budi").
		WillReturnRows(userRow(uuid.New(), string(hash)))

	svc := AuthService{UserRepo: repositories.UserRepository{DB: db}, DB: db, JWTSecret: "s"}
	_, err = svc.Login(LoginInput{Identifier: "budi", Password: "wrong"})
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginRejectsUnknownIdentifier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := AuthService{UserRepo: repositories.UserRepository{DB: db}, DB: db, JWTSecret: "s"}
	_, err = svc.Login(LoginInput{Identifier: "ghost", Password: "whatever"})
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRegisterRejectsTakenIdentity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
		WithArgs("budi@kopisenja.id", "budi").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	svc := AuthService{UserRepo: repositories.UserRepository{DB: db}, DB: db}
	_, err = svc.Register(RegisterInput{
		Name:     "Budi",
		Email:    "budi@kopisenja.id",
		Username: "budi",
		Password: "secret-password",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterValidatesPasswordLength(t *testing.T) {
	svc := AuthService{}
	_, err := svc.Register(RegisterInput{
		Name:     "Budi",
		Email:    "budi@kopisenja.id",
		Username: "budi",
		Password: "short",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
