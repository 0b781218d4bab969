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

// StockRepository wraps DB access for the stock movement ledger.
type StockRepository struct {
	DB *sql.DB
}

func (r StockRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// Create appends a movement on the caller's connection, so the ledger
// row and the quantity update commit together.
func (r StockRepository) Create(conn intdb.Conn, m models.StockMovement) (models.StockMovement, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	err := conn.QueryRow(`
		INSERT INTO stock_movements (id, product_id, variant_id, business_id,
		                             movement_type, quantity, qty_before, qty_after,
		                             reference_type, reference_id, reference_number, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`, m.ID, m.ProductID, m.VariantID, m.BusinessID,
		m.MovementType, m.Quantity, m.QtyBefore, m.QtyAfter,
		m.ReferenceType, m.ReferenceID, m.ReferenceNumber, m.Notes, m.CreatedBy,
	).Scan(&m.CreatedAt)
	if err != nil {
		return models.StockMovement{}, err
	}
	return m, nil
}

// ListByProduct returns the movement history for one product, newest
// first, through the dynamic query so filters like movement_type work.
func (r StockRepository) ListByProduct(productID uuid.UUID, p domain.ListParams) ([]models.StockMovement, int, error) {
	filters := toFilters(p.Filters)
	filters = append(filters, query.Filter{Key: "product_id", Op: query.OpEqual, Value: productID})

	spec := query.Spec{
		Entity:         models.StockMovementEntity,
		Search:         p.Search,
		AutoSearchText: true,
		Filters:        filters,
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

	var out []models.StockMovement
	for rows.Next() {
		var m models.StockMovement
		var variantID, referenceID sql.NullString
		var referenceType, referenceNumber, notes, createdBy sql.NullString

		err := rows.Scan(
			&m.ID, &m.ProductID, &variantID, &m.BusinessID,
			&m.MovementType, &m.Quantity, &m.QtyBefore, &m.QtyAfter,
			&referenceType, &referenceID, &referenceNumber, &notes,
			&m.CreatedAt, &createdBy,
		)
		if err != nil {
			return nil, 0, err
		}

		if variantID.Valid {
			if id, err := uuid.Parse(variantID.String); err == nil {
				m.VariantID = &id
			}
		}
		if referenceID.Valid {
			if id, err := uuid.Parse(referenceID.String); err == nil {
				m.ReferenceID = &id
			}
		}
		if referenceType.Valid {
			m.ReferenceType = &referenceType.String
		}
		if referenceNumber.Valid {
			m.ReferenceNumber = &referenceNumber.String
		}
		if notes.Valid {
			m.Notes = &notes.String
		}
		if createdBy.Valid {
			m.CreatedBy = &createdBy.String
		}
		out = append(out, m)
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
