package repositories

import (
	"database/sql"

	"backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/query"
)

// CategoryRepository wraps DB access for product categories.
type CategoryRepository struct {
	DB *sql.DB
}

func (r CategoryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// List runs the dynamic list query.
func (r CategoryRepository) List(p domain.ListParams) ([]models.Category, int, error) {
	spec := query.Spec{
		Entity:         models.CategoryEntity,
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

	var out []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
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

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	var desc, createdBy, updatedBy sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(&c.ID, &c.Name, &desc, &c.CreatedAt, &createdBy, &updatedAt, &updatedBy)
	if err != nil {
		return models.Category{}, err
	}
	if desc.Valid {
		c.Description = &desc.String
	}
	if createdBy.Valid {
		c.CreatedBy = &createdBy.String
	}
	if updatedAt.Valid {
		c.UpdatedAt = &updatedAt.Time
	}
	if updatedBy.Valid {
		c.UpdatedBy = &updatedBy.String
	}
	return c, nil
}

// FindByID loads an active category.
func (r CategoryRepository) FindByID(id int64) (models.Category, error) {
	row := r.db().QueryRow(`
		SELECT id, name, description, created_at, created_by, updated_at, updated_by
		FROM categories
		WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanCategory(row)
}

// ExistsName reports whether an active category already uses name.
func (r CategoryRepository) ExistsName(name string) (bool, error) {
	var count int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM categories
		WHERE name = $1 AND deleted_at IS NULL`, name).Scan(&count)
	return count > 0, err
}

// Create inserts a category.
func (r CategoryRepository) Create(c models.Category) (models.Category, error) {
	err := r.db().QueryRow(`
		INSERT INTO categories (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.Name, c.Description, c.CreatedBy).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return models.Category{}, err
	}
	return c, nil
}

// Update persists the mutable fields.
func (r CategoryRepository) Update(c models.Category) error {
	_, err := r.db().Exec(`
		UPDATE categories
		SET name = $1, description = $2, updated_at = now(), updated_by = $3
		WHERE id = $4 AND deleted_at IS NULL
	`, c.Name, c.Description, c.UpdatedBy, c.ID)
	return err
}

// SoftDelete stamps deleted_at/deleted_by.
func (r CategoryRepository) SoftDelete(id int64, deletedBy string) error {
	_, err := r.db().Exec(`
		UPDATE categories
		SET deleted_at = now(), deleted_by = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, deletedBy, id)
	return err
}
