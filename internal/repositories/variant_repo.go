package repositories

import (
	"database/sql"

	"backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain/models"

	"github.com/google/uuid"
)

// VariantRepository wraps DB access for product variants and the
// attribute matrix behind them.
type VariantRepository struct {
	DB *sql.DB
}

func (r VariantRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const variantColumns = `id, product_id, variant_code, variant_sequence, variant_name,
	price_adjustment, selling_price, sku, qty, min_stock,
	weight, length, width, height, is_active, is_default,
	created_at, created_by, updated_at, updated_by`

func scanVariant(row rowScanner) (models.ProductVariant, error) {
	var v models.ProductVariant
	var sellingPrice sql.NullFloat64
	var minStock sql.NullInt64
	var weight, length, width, height sql.NullFloat64
	var createdBy, updatedBy sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&v.ID, &v.ProductID, &v.VariantCode, &v.VariantSequence, &v.VariantName,
		&v.PriceAdjustment, &sellingPrice, &v.SKU, &v.Qty, &minStock,
		&weight, &length, &width, &height, &v.IsActive, &v.IsDefault,
		&v.CreatedAt, &createdBy, &updatedAt, &updatedBy,
	)
	if err != nil {
		return models.ProductVariant{}, err
	}

	if sellingPrice.Valid {
		v.SellingPrice = &sellingPrice.Float64
	}
	if minStock.Valid {
		n := int(minStock.Int64)
		v.MinStock = &n
	}
	if weight.Valid {
		v.Weight = &weight.Float64
	}
	if length.Valid {
		v.Length = &length.Float64
	}
	if width.Valid {
		v.Width = &width.Float64
	}
	if height.Valid {
		v.Height = &height.Float64
	}
	if createdBy.Valid {
		v.CreatedBy = &createdBy.String
	}
	if updatedAt.Valid {
		v.UpdatedAt = &updatedAt.Time
	}
	if updatedBy.Valid {
		v.UpdatedBy = &updatedBy.String
	}
	return v, nil
}

// ListByProduct returns the active variants ordered by sequence.
func (r VariantRepository) ListByProduct(productID uuid.UUID) ([]models.ProductVariant, error) {
	rows, err := r.db().Query(`
		SELECT `+variantColumns+`
		FROM product_variants
		WHERE product_id = $1 AND deleted_at IS NULL
		ORDER BY variant_sequence`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// FindByID loads an active variant.
func (r VariantRepository) FindByID(id uuid.UUID) (models.ProductVariant, error) {
	row := r.db().QueryRow(`
		SELECT `+variantColumns+`
		FROM product_variants
		WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanVariant(row)
}

// ExistsSKU reports whether an active variant already carries the SKU.
func (r VariantRepository) ExistsSKU(sku string) (bool, error) {
	var count int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM product_variants
		WHERE sku = $1 AND deleted_at IS NULL`, sku).Scan(&count)
	return count > 0, err
}

// Create inserts a variant on the caller's connection.
func (r VariantRepository) Create(conn intdb.Conn, v models.ProductVariant) (models.ProductVariant, error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	err := conn.QueryRow(`
		INSERT INTO product_variants (id, product_id, variant_code, variant_sequence, variant_name,
		                              price_adjustment, selling_price, sku, qty, min_stock,
		                              weight, length, width, height, is_active, is_default, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at
	`, v.ID, v.ProductID, v.VariantCode, v.VariantSequence, v.VariantName,
		v.PriceAdjustment, v.SellingPrice, v.SKU, v.Qty, v.MinStock,
		v.Weight, v.Length, v.Width, v.Height, v.IsActive, v.IsDefault, v.CreatedBy,
	).Scan(&v.CreatedAt)
	if err != nil {
		return models.ProductVariant{}, err
	}
	return v, nil
}

// UpdateQty writes the quantity on the caller's connection.
// QtyForUpdate reads the stored quantity under a row lock, so the
// caller's ledger snapshot and quantity write see the same value.
func (r VariantRepository) QtyForUpdate(conn intdb.Conn, id uuid.UUID) (int, error) {
	var qty int
	err := conn.QueryRow(`
		SELECT qty FROM product_variants
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`, id).Scan(&qty)
	return qty, err
}

func (r VariantRepository) UpdateQty(conn intdb.Conn, id uuid.UUID, qty int, updatedBy string) error {
	_, err := conn.Exec(`
		UPDATE product_variants
		SET qty = $1, updated_at = now(), updated_by = $2
		WHERE id = $3 AND deleted_at IS NULL
	`, qty, updatedBy, id)
	return err
}

// CreateAttribute inserts one attribute row on the caller's connection.
func (r VariantRepository) CreateAttribute(conn intdb.Conn, a models.VariantAttribute) (models.VariantAttribute, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	err := conn.QueryRow(`
		INSERT INTO variant_attributes (id, product_id, attribute_name, display_order, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, a.ID, a.ProductID, a.AttributeName, a.DisplayOrder, a.CreatedBy).Scan(&a.CreatedAt)
	if err != nil {
		return models.VariantAttribute{}, err
	}
	return a, nil
}

// CreateAttributeValue inserts one value row on the caller's connection.
func (r VariantRepository) CreateAttributeValue(conn intdb.Conn, v models.VariantAttributeValue) (models.VariantAttributeValue, error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	err := conn.QueryRow(`
		INSERT INTO variant_attribute_values (id, attribute_id, value, color_code, image_url, display_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, v.ID, v.AttributeID, v.Value, v.ColorCode, v.ImageURL, v.DisplayOrder, v.IsActive).Scan(&v.CreatedAt)
	if err != nil {
		return models.VariantAttributeValue{}, err
	}
	return v, nil
}

// ListAttributesByProduct returns the attribute matrix with values,
// ordered for display.
func (r VariantRepository) ListAttributesByProduct(productID uuid.UUID) ([]models.VariantAttribute, error) {
	rows, err := r.db().Query(`
		SELECT id, product_id, attribute_name, display_order, created_at, created_by
		FROM variant_attributes
		WHERE product_id = $1
		ORDER BY display_order, attribute_name`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attrs []models.VariantAttribute
	for rows.Next() {
		var a models.VariantAttribute
		var createdBy sql.NullString
		if err := rows.Scan(&a.ID, &a.ProductID, &a.AttributeName, &a.DisplayOrder, &a.CreatedAt, &createdBy); err != nil {
			return nil, err
		}
		if createdBy.Valid {
			a.CreatedBy = &createdBy.String
		}
		attrs = append(attrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range attrs {
		values, err := r.listAttributeValues(attrs[i].ID)
		if err != nil {
			return nil, err
		}
		attrs[i].Values = values
	}
	return attrs, nil
}

func (r VariantRepository) listAttributeValues(attributeID uuid.UUID) ([]models.VariantAttributeValue, error) {
	rows, err := r.db().Query(`
		SELECT id, attribute_id, value, color_code, image_url, display_order, is_active, created_at
		FROM variant_attribute_values
		WHERE attribute_id = $1
		ORDER BY display_order, value`, attributeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.VariantAttributeValue
	for rows.Next() {
		var v models.VariantAttributeValue
		var colorCode, imageURL sql.NullString
		if err := rows.Scan(&v.ID, &v.AttributeID, &v.Value, &colorCode, &imageURL, &v.DisplayOrder, &v.IsActive, &v.CreatedAt); err != nil {
			return nil, err
		}
		if colorCode.Valid {
			v.ColorCode = &colorCode.String
		}
		if imageURL.Valid {
			v.ImageURL = &imageURL.String
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
