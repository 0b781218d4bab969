package repositories

import (
	"database/sql"

	"backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain/models"

	"github.com/google/uuid"
)

// UserRepository wraps DB access for users.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// FindByIdentifier loads an active user by email or username.
func (r UserRepository) FindByIdentifier(identifier string) (models.User, error) {
	var u models.User
	var updatedAt sql.NullTime
	err := r.db().QueryRow(`
		SELECT id, name, email, username, password, role, created_at, updated_at
		FROM users
		WHERE (email = $1 OR username = $1) AND deleted_at IS NULL
	`, identifier).Scan(
		&u.ID, &u.Name, &u.Email, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &updatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	if updatedAt.Valid {
		u.UpdatedAt = &updatedAt.Time
	}
	return u, nil
}

// FindByID loads an active user by id.
func (r UserRepository) FindByID(id uuid.UUID) (models.User, error) {
	var u models.User
	var updatedAt sql.NullTime
	err := r.db().QueryRow(`
		SELECT id, name, email, username, password, role, created_at, updated_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &updatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	if updatedAt.Valid {
		u.UpdatedAt = &updatedAt.Time
	}
	return u, nil
}

// ExistsByEmailOrUsername reports whether either identifier is already
// taken by an active user.
func (r UserRepository) ExistsByEmailOrUsername(conn intdb.Conn, email, username string) (bool, error) {
	var count int
	err := conn.QueryRow(`
		SELECT COUNT(*) FROM users
		WHERE (email = $1 OR username = $2) AND deleted_at IS NULL
	`, email, username).Scan(&count)
	return count > 0, err
}

// Create inserts a user on the given connection (plain DB or an open
// transaction owned by the caller).
func (r UserRepository) Create(conn intdb.Conn, u models.User) (models.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	err := conn.QueryRow(`
		INSERT INTO users (id, name, email, username, password, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, u.ID, u.Name, u.Email, u.Username, u.Password, u.Role).Scan(&u.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}
