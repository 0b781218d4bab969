package repositories

import (
	"database/sql"

	"backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/query"

	"github.com/google/uuid"
)

// OrderSecretRepository wraps DB access for order secrets.
type OrderSecretRepository struct {
	DB *sql.DB
}

func (r OrderSecretRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// List runs the dynamic list query joined to the marketplace category,
// so filters/sort accept tokens like "category_marketplace.name".
func (r OrderSecretRepository) List(p domain.ListParams) ([]models.OrderSecret, int, error) {
	spec := query.Spec{
		Entity: models.OrderSecretEntity,
		Joins: []query.Join{
			{
				Entity:   models.CategoryMarketplaceEntity,
				On:       "order_secrets.category_marketplace_id = category_marketplaces.id",
				Alias:    "category_marketplace",
				LoadOnly: []string{"id", "name", "description"},
			},
		},
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

	var out []models.OrderSecret
	for rows.Next() {
		var os models.OrderSecret
		var message, emotional, fromName, createdBy, updatedBy sql.NullString
		var updatedAt sql.NullTime
		var cmID sql.NullString
		var cmName, cmDesc sql.NullString

		err := rows.Scan(
			&os.ID, &os.OrderSecretID, &os.CategoryMarketplaceID,
			&message, &emotional, &fromName,
			&os.CreatedAt, &createdBy, &updatedAt, &updatedBy,
			&cmID, &cmName, &cmDesc,
		)
		if err != nil {
			return nil, 0, err
		}

		if message.Valid {
			os.Message = &message.String
		}
		if emotional.Valid {
			os.Emotional = &emotional.String
		}
		if fromName.Valid {
			os.FromName = &fromName.String
		}
		if createdBy.Valid {
			os.CreatedBy = &createdBy.String
		}
		if updatedAt.Valid {
			os.UpdatedAt = &updatedAt.Time
		}
		if updatedBy.Valid {
			os.UpdatedBy = &updatedBy.String
		}

		if cmID.Valid {
			if id, err := uuid.Parse(cmID.String); err == nil {
				cm := &models.CategoryMarketplace{ID: id, Name: cmName.String}
				if cmDesc.Valid {
					cm.Description = &cmDesc.String
				}
				os.CategoryMarketplace = cm
			}
		}

		out = append(out, os)
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

// FindByOrderSecretID loads an active row by its public id.
func (r OrderSecretRepository) FindByOrderSecretID(orderSecretID string) (models.OrderSecret, error) {
	row := r.db().QueryRow(`
		SELECT id, order_secret_id, category_marketplace_id, message, emotional, from_name,
		       created_at, created_by, updated_at, updated_by
		FROM order_secrets
		WHERE order_secret_id = $1 AND deleted_at IS NULL`, orderSecretID)
	return scanOrderSecret(row)
}

func scanOrderSecret(row rowScanner) (models.OrderSecret, error) {
	var os models.OrderSecret
	var message, emotional, fromName, createdBy, updatedBy sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&os.ID, &os.OrderSecretID, &os.CategoryMarketplaceID,
		&message, &emotional, &fromName,
		&os.CreatedAt, &createdBy, &updatedAt, &updatedBy,
	)
	if err != nil {
		return models.OrderSecret{}, err
	}
	if message.Valid {
		os.Message = &message.String
	}
	if emotional.Valid {
		os.Emotional = &emotional.String
	}
	if fromName.Valid {
		os.FromName = &fromName.String
	}
	if createdBy.Valid {
		os.CreatedBy = &createdBy.String
	}
	if updatedAt.Valid {
		os.UpdatedAt = &updatedAt.Time
	}
	if updatedBy.Valid {
		os.UpdatedBy = &updatedBy.String
	}
	return os, nil
}

// ExistsOrderSecretID reports whether an active row already uses the
// public id.
func (r OrderSecretRepository) ExistsOrderSecretID(orderSecretID string) (bool, error) {
	var count int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM order_secrets
		WHERE order_secret_id = $1 AND deleted_at IS NULL`, orderSecretID).Scan(&count)
	return count > 0, err
}

// Create inserts an order secret.
func (r OrderSecretRepository) Create(os models.OrderSecret) (models.OrderSecret, error) {
	if os.ID == uuid.Nil {
		os.ID = uuid.New()
	}
	err := r.db().QueryRow(`
		INSERT INTO order_secrets (id, order_secret_id, category_marketplace_id,
		                           message, emotional, from_name, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, os.ID, os.OrderSecretID, os.CategoryMarketplaceID,
		os.Message, os.Emotional, os.FromName, os.CreatedBy,
	).Scan(&os.CreatedAt)
	if err != nil {
		return models.OrderSecret{}, err
	}
	return os, nil
}

// Update persists the mutable fields.
func (r OrderSecretRepository) Update(os models.OrderSecret) error {
	_, err := r.db().Exec(`
		UPDATE order_secrets
		SET category_marketplace_id = $1, message = $2, emotional = $3, from_name = $4,
		    updated_at = now(), updated_by = $5
		WHERE id = $6 AND deleted_at IS NULL
	`, os.CategoryMarketplaceID, os.Message, os.Emotional, os.FromName, os.UpdatedBy, os.ID)
	return err
}

// SoftDelete stamps deleted_at/deleted_by.
func (r OrderSecretRepository) SoftDelete(id uuid.UUID, deletedBy string) error {
	_, err := r.db().Exec(`
		UPDATE order_secrets
		SET deleted_at = now(), deleted_by = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, deletedBy, id)
	return err
}
