package repositories

import (
	"database/sql"

	"backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/query"

	"github.com/google/uuid"
)

// CategoryMarketplaceRepository wraps DB access for marketplace
// categories (TikTok Shop, Shopee, ...).
type CategoryMarketplaceRepository struct {
	DB *sql.DB
}

func (r CategoryMarketplaceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// List runs the dynamic list query.
func (r CategoryMarketplaceRepository) List(p domain.ListParams) ([]models.CategoryMarketplace, int, error) {
	spec := query.Spec{
		Entity:         models.CategoryMarketplaceEntity,
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

	var out []models.CategoryMarketplace
	for rows.Next() {
		cm, err := scanCategoryMarketplace(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, cm)
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

func scanCategoryMarketplace(row rowScanner) (models.CategoryMarketplace, error) {
	var cm models.CategoryMarketplace
	var desc, createdBy, updatedBy sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(&cm.ID, &cm.Name, &desc, &cm.CreatedAt, &createdBy, &updatedAt, &updatedBy)
	if err != nil {
		return models.CategoryMarketplace{}, err
	}
	if desc.Valid {
		cm.Description = &desc.String
	}
	if createdBy.Valid {
		cm.CreatedBy = &createdBy.String
	}
	if updatedAt.Valid {
		cm.UpdatedAt = &updatedAt.Time
	}
	if updatedBy.Valid {
		cm.UpdatedBy = &updatedBy.String
	}
	return cm, nil
}

// FindByID loads an active marketplace category.
func (r CategoryMarketplaceRepository) FindByID(id uuid.UUID) (models.CategoryMarketplace, error) {
	row := r.db().QueryRow(`
		SELECT id, name, description, created_at, created_by, updated_at, updated_by
		FROM category_marketplaces
		WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanCategoryMarketplace(row)
}

// ExistsName reports whether an active row already uses name.
func (r CategoryMarketplaceRepository) ExistsName(name string) (bool, error) {
	var count int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM category_marketplaces
		WHERE name = $1 AND deleted_at IS NULL`, name).Scan(&count)
	return count > 0, err
}

// Create inserts a marketplace category.
func (r CategoryMarketplaceRepository) Create(cm models.CategoryMarketplace) (models.CategoryMarketplace, error) {
	if cm.ID == uuid.Nil {
		cm.ID = uuid.New()
	}
	err := r.db().QueryRow(`
		INSERT INTO category_marketplaces (id, name, description, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, cm.ID, cm.Name, cm.Description, cm.CreatedBy).Scan(&cm.CreatedAt)
	if err != nil {
		return models.CategoryMarketplace{}, err
	}
	return cm, nil
}

// Update persists the mutable fields.
func (r CategoryMarketplaceRepository) Update(cm models.CategoryMarketplace) error {
	_, err := r.db().Exec(`
		UPDATE category_marketplaces
		SET name = $1, description = $2, updated_at = now(), updated_by = $3
		WHERE id = $4 AND deleted_at IS NULL
	`, cm.Name, cm.Description, cm.UpdatedBy, cm.ID)
	return err
}

// SoftDelete stamps deleted_at/deleted_by.
func (r CategoryMarketplaceRepository) SoftDelete(id uuid.UUID, deletedBy string) error {
	_, err := r.db().Exec(`
		UPDATE category_marketplaces
		SET deleted_at = now(), deleted_by = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, deletedBy, id)
	return err
}
