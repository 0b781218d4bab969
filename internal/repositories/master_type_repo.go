package repositories

import (
	"database/sql"

	"backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/query"

	"github.com/google/uuid"
)

// MasterTypeRepository wraps DB access for master_types.
type MasterTypeRepository struct {
	DB *sql.DB
}

func (r MasterTypeRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const masterTypeColumns = `id, group_code, code, name, description, is_active,
	created_at, created_by, updated_at, updated_by`

// List runs the dynamic list query; default order is group_code.
func (r MasterTypeRepository) List(p domain.ListParams) ([]models.MasterType, int, error) {
	spec := query.Spec{
		Entity:         models.MasterTypeEntity,
		Search:         p.Search,
		AutoSearchText: true,
		Filters:        toFilters(p.Filters),
		SortBy:         p.SortBy,
		SortOrder:      p.SortOrder,
		DefaultSort:    "group_code",
		Page:           p.Page,
		PerPage:        p.PerPage,
	}

	sqlStr, args := spec.SelectSQL()
	rows, err := r.db().Query(sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.MasterType
	for rows.Next() {
		mt, err := scanMasterType(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, mt)
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

func scanMasterType(row rowScanner) (models.MasterType, error) {
	var mt models.MasterType
	var desc, createdBy, updatedBy sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&mt.ID, &mt.GroupCode, &mt.Code, &mt.Name, &desc, &mt.IsActive,
		&mt.CreatedAt, &createdBy, &updatedAt, &updatedBy,
	)
	if err != nil {
		return models.MasterType{}, err
	}
	if desc.Valid {
		mt.Description = &desc.String
	}
	if createdBy.Valid {
		mt.CreatedBy = &createdBy.String
	}
	if updatedAt.Valid {
		mt.UpdatedAt = &updatedAt.Time
	}
	if updatedBy.Valid {
		mt.UpdatedBy = &updatedBy.String
	}
	return mt, nil
}

// FindByID loads an active master type.
func (r MasterTypeRepository) FindByID(id uuid.UUID) (models.MasterType, error) {
	row := r.db().QueryRow(`
		SELECT `+masterTypeColumns+`
		FROM master_types
		WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanMasterType(row)
}

// ExistsCode reports whether an active row already uses code.
func (r MasterTypeRepository) ExistsCode(code string) (bool, error) {
	var count int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM master_types
		WHERE code = $1 AND deleted_at IS NULL`, code).Scan(&count)
	return count > 0, err
}

// Create inserts a master type.
func (r MasterTypeRepository) Create(mt models.MasterType) (models.MasterType, error) {
	if mt.ID == uuid.Nil {
		mt.ID = uuid.New()
	}
	err := r.db().QueryRow(`
		INSERT INTO master_types (id, group_code, code, name, description, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, mt.ID, mt.GroupCode, mt.Code, mt.Name, mt.Description, mt.IsActive, mt.CreatedBy).
		Scan(&mt.CreatedAt)
	if err != nil {
		return models.MasterType{}, err
	}
	return mt, nil
}

// Update persists the mutable fields.
func (r MasterTypeRepository) Update(mt models.MasterType) error {
	_, err := r.db().Exec(`
		UPDATE master_types
		SET group_code = $1, code = $2, name = $3, description = $4, is_active = $5,
		    updated_at = now(), updated_by = $6
		WHERE id = $7 AND deleted_at IS NULL
	`, mt.GroupCode, mt.Code, mt.Name, mt.Description, mt.IsActive, mt.UpdatedBy, mt.ID)
	return err
}

// SoftDelete stamps deleted_at/deleted_by.
func (r MasterTypeRepository) SoftDelete(id uuid.UUID, deletedBy string) error {
	_, err := r.db().Exec(`
		UPDATE master_types
		SET deleted_at = now(), deleted_by = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, deletedBy, id)
	return err
}
