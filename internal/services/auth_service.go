package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginInput struct {
	Identifier string `json:"identifier"` // email or username
	Password   string `json:"password"`
}

type TokenResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        models.User `json:"user"`
}

type AuthService struct {
	UserRepo  repositories.UserRepository
	DB        *sql.DB
	JWTSecret string
	TokenTTL  time.Duration
}

func (s AuthService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AuthService) users() repositories.UserRepository {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepository{DB: s.db()}
}

// Register creates a plain user account. Merchant accounts come from
// business registration instead.
func (s AuthService) Register(in RegisterInput) (models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))

	if in.Name == "" {
		return models.User{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "valid email is required"}
	}
	if in.Username == "" {
		return models.User{}, domain.ValidationError{Field: "username", Msg: "username is required"}
	}
	if len(in.Password) < 8 {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "password must be at least 8 characters"}
	}

	taken, err := s.users().ExistsByEmailOrUsername(s.db(), in.Email, in.Username)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	if taken {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email or username already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	user, err := s.users().Create(s.db(), models.User{
		Name:     in.Name,
		Email:    in.Email,
		Username: in.Username,
		Password: string(hash),
		Role:     models.RoleUser,
	})
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	return user, nil
}

// Login checks credentials and issues an HS256 access token.
func (s AuthService) Login(in LoginInput) (TokenResult, error) {
	identifier := strings.ToLower(strings.TrimSpace(in.Identifier))
	if identifier == "" || in.Password == "" {
		return TokenResult{}, domain.ValidationError{Field: "identifier", Msg: "identifier and password are required"}
	}

	user, err := s.users().FindByIdentifier(identifier)
	if errors.Is(err, sql.ErrNoRows) {
		return TokenResult{}, domain.UnauthorizedError{Msg: "invalid credentials"}
	}
	if err != nil {
		return TokenResult{}, domain.InternalError{Err: err}
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return TokenResult{}, domain.UnauthorizedError{Msg: "invalid credentials"}
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.JWTSecret))
	if err != nil {
		return TokenResult{}, domain.InternalError{Err: err}
	}

	return TokenResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		User:        user,
	}, nil
}

// Me loads the authenticated user's profile.
func (s AuthService) Me(userID string) (models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return models.User{}, domain.UnauthorizedError{Msg: "invalid token subject", Err: err}
	}
	user, err := s.users().FindByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	return user, nil
}
