package repositories

import (
	"database/sql"

	"backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/query"

	"github.com/google/uuid"
)

// BusinessRepository wraps DB access for businesses.
type BusinessRepository struct {
	DB *sql.DB
}

func (r BusinessRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func businessListJoins() []query.Join {
	return []query.Join{
		{
			Entity:   models.UserEntity,
			On:       "businesses.user_id = users.id",
			Alias:    "user",
			LoadOnly: models.UserJoinColumns,
		},
		{
			Entity: models.MasterTypeEntity,
			On:     "businesses.business_type_id = master_types.id",
			Alias:  "business_type",
			Outer:  true,
		},
	}
}

// List runs the dynamic list query with the user / business-type joins
// and returns the rows plus the unpaginated total when a window is
// requested.
func (r BusinessRepository) List(p domain.ListParams) ([]models.Business, int, error) {
	spec := query.Spec{
		Entity:         models.BusinessEntity,
		Joins:          businessListJoins(),
		Search:         p.Search,
		AutoSearchText: true,
		Filters:        toFilters(p.Filters),
		SortBy:         p.SortBy,
		SortOrder:      p.SortOrder,
		DefaultSort:    "created_at",
		Page:           p.Page,
		PerPage:        p.PerPage,
	}

	sqlStr, args := spec.SelectSQL()
	rows, err := r.db().Query(sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Business
	for rows.Next() {
		b, err := scanBusinessWithJoins(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total := len(out)
	if p.Paginated() {
		countSpec := spec
		countSpec.Page, countSpec.PerPage = 0, 0
		countSQL, countArgs := countSpec.CountSQL()
		if err := r.db().QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

func scanBusinessWithJoins(rows *sql.Rows) (models.Business, error) {
	var b models.Business
	var address, createdBy, updatedBy sql.NullString
	var updatedAt sql.NullTime

	var userID sql.NullString
	var userName, userEmail, userUsername, userRole sql.NullString

	var typeID sql.NullString
	var typeGroup, typeCode, typeName, typeDesc, typeCreatedBy, typeUpdatedBy sql.NullString
	var typeActive sql.NullBool
	var typeCreatedAt, typeUpdatedAt sql.NullTime

	err := rows.Scan(
		&b.ID, &b.BusinessCode, &b.BusinessName, &b.ShopName, &b.NameOwner,
		&b.Phone, &b.Email, &address, &b.UserID, &b.BusinessTypeID, &b.Status,
		&b.CreatedAt, &createdBy, &updatedAt, &updatedBy,
		&userID, &userName, &userEmail, &userUsername, &userRole,
		&typeID, &typeGroup, &typeCode, &typeName, &typeDesc, &typeActive,
		&typeCreatedAt, &typeCreatedBy, &typeUpdatedAt, &typeUpdatedBy,
	)
	if err != nil {
		return models.Business{}, err
	}

	if address.Valid {
		b.Address = &address.String
	}
	if createdBy.Valid {
		b.CreatedBy = &createdBy.String
	}
	if updatedAt.Valid {
		b.UpdatedAt = &updatedAt.Time
	}
	if updatedBy.Valid {
		b.UpdatedBy = &updatedBy.String
	}

	if userID.Valid {
		uid, err := uuid.Parse(userID.String)
		if err == nil {
			b.User = &models.User{
				ID:       uid,
				Name:     userName.String,
				Email:    userEmail.String,
				Username: userUsername.String,
				Role:     userRole.String,
			}
		}
	}

	if typeID.Valid {
		tid, err := uuid.Parse(typeID.String)
		if err == nil {
			mt := &models.MasterType{
				ID:        tid,
				GroupCode: typeGroup.String,
				Code:      typeCode.String,
				Name:      typeName.String,
				IsActive:  typeActive.Bool,
			}
			if typeDesc.Valid {
				mt.Description = &typeDesc.String
			}
			if typeCreatedAt.Valid {
				mt.CreatedAt = typeCreatedAt.Time
			}
			b.BusinessType = mt
		}
	}

	return b, nil
}

// FindByID loads an active business.
func (r BusinessRepository) FindByID(id uuid.UUID) (models.Business, error) {
	return r.findOne(`id = $1`, id)
}

// FindByIDAndUser scopes lookup to the owning user.
func (r BusinessRepository) FindByIDAndUser(id, userID uuid.UUID) (models.Business, error) {
	return r.findOne(`id = $1 AND user_id = $2`, id, userID)
}

func (r BusinessRepository) findOne(where string, args ...any) (models.Business, error) {
	row := r.db().QueryRow(`
		SELECT id, business_code, business_name, shop_name, name_owner, phone, email,
		       address, user_id, business_type_id, status,
		       created_at, created_by, updated_at, updated_by
		FROM businesses
		WHERE `+where+` AND deleted_at IS NULL`, args...)
	return scanBusinessRow(row)
}

// FindAllByUser lists the caller's active businesses, newest first.
func (r BusinessRepository) FindAllByUser(userID uuid.UUID) ([]models.Business, error) {
	rows, err := r.db().Query(`
		SELECT id, business_code, business_name, shop_name, name_owner, phone, email,
		       address, user_id, business_type_id, status,
		       created_at, created_by, updated_at, updated_by
		FROM businesses
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Business
	for rows.Next() {
		b, err := scanBusinessRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBusinessRow(row rowScanner) (models.Business, error) {
	var b models.Business
	var address, createdBy, updatedBy sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&b.ID, &b.BusinessCode, &b.BusinessName, &b.ShopName, &b.NameOwner,
		&b.Phone, &b.Email, &address, &b.UserID, &b.BusinessTypeID, &b.Status,
		&b.CreatedAt, &createdBy, &updatedAt, &updatedBy,
	)
	if err != nil {
		return models.Business{}, err
	}
	if address.Valid {
		b.Address = &address.String
	}
	if createdBy.Valid {
		b.CreatedBy = &createdBy.String
	}
	if updatedAt.Valid {
		b.UpdatedAt = &updatedAt.Time
	}
	if updatedBy.Valid {
		b.UpdatedBy = &updatedBy.String
	}
	return b, nil
}

// Create inserts a business on the caller's connection.
func (r BusinessRepository) Create(conn intdb.Conn, b models.Business) (models.Business, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	err := conn.QueryRow(`
		INSERT INTO businesses (id, business_code, business_name, shop_name, name_owner,
		                        phone, email, address, user_id, business_type_id, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`, b.ID, b.BusinessCode, b.BusinessName, b.ShopName, b.NameOwner,
		b.Phone, b.Email, b.Address, b.UserID, b.BusinessTypeID, b.Status, b.CreatedBy,
	).Scan(&b.CreatedAt)
	if err != nil {
		return models.Business{}, err
	}
	return b, nil
}

// Update persists the mutable business fields.
func (r BusinessRepository) Update(b models.Business) error {
	_, err := r.db().Exec(`
		UPDATE businesses
		SET business_name = $1, shop_name = $2, name_owner = $3, phone = $4,
		    email = $5, address = $6, business_type_id = $7, status = $8,
		    updated_at = now(), updated_by = $9
		WHERE id = $10 AND deleted_at IS NULL
	`, b.BusinessName, b.ShopName, b.NameOwner, b.Phone,
		b.Email, b.Address, b.BusinessTypeID, b.Status, b.UpdatedBy, b.ID)
	return err
}

// SoftDelete stamps deleted_at/deleted_by and leaves the row in place.
func (r BusinessRepository) SoftDelete(id uuid.UUID, deletedBy string) error {
	_, err := r.db().Exec(`
		UPDATE businesses
		SET deleted_at = now(), deleted_by = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, deletedBy, id)
	return err
}
