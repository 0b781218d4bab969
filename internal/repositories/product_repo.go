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

// ProductRepository wraps DB access for products.
type ProductRepository struct {
	DB *sql.DB
}

func (r ProductRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const productColumns = `id, product_code, product_sequence, user_id, business_id, category_id,
	name, slug, description, product_type, base_price, selling_price,
	track_inventory, qty, min_stock, max_stock, sku,
	weight, length, width, height,
	is_active, is_featured, is_synced_to_marketplace,
	created_at, created_by, updated_at, updated_by`

// List runs the dynamic product query scoped to one business.
func (r ProductRepository) List(businessID uuid.UUID, p domain.ListParams) ([]models.Product, int, error) {
	filters := toFilters(p.Filters)
	filters = append(filters, query.Filter{Key: "business_id", Op: query.OpEqual, Value: businessID})

	spec := query.Spec{
		Entity:         models.ProductEntity,
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

	var out []models.Product
	for rows.Next() {
		pr, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, pr)
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

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var categoryID sql.NullInt64
	var description, sku, createdBy, updatedBy sql.NullString
	var qty, minStock, maxStock sql.NullInt64
	var weight, length, width, height sql.NullFloat64
	var updatedAt sql.NullTime

	err := row.Scan(
		&p.ID, &p.ProductCode, &p.ProductSequence, &p.UserID, &p.BusinessID, &categoryID,
		&p.Name, &p.Slug, &description, &p.ProductType, &p.BasePrice, &p.SellingPrice,
		&p.TrackInventory, &qty, &minStock, &maxStock, &sku,
		&weight, &length, &width, &height,
		&p.IsActive, &p.IsFeatured, &p.IsSyncedToMarketplace,
		&p.CreatedAt, &createdBy, &updatedAt, &updatedBy,
	)
	if err != nil {
		return models.Product{}, err
	}

	if categoryID.Valid {
		p.CategoryID = &categoryID.Int64
	}
	if description.Valid {
		p.Description = &description.String
	}
	if sku.Valid {
		p.SKU = &sku.String
	}
	if qty.Valid {
		v := int(qty.Int64)
		p.Qty = &v
	}
	if minStock.Valid {
		v := int(minStock.Int64)
		p.MinStock = &v
	}
	if maxStock.Valid {
		v := int(maxStock.Int64)
		p.MaxStock = &v
	}
	if weight.Valid {
		p.Weight = &weight.Float64
	}
	if length.Valid {
		p.Length = &length.Float64
	}
	if width.Valid {
		p.Width = &width.Float64
	}
	if height.Valid {
		p.Height = &height.Float64
	}
	if createdBy.Valid {
		p.CreatedBy = &createdBy.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	if updatedBy.Valid {
		p.UpdatedBy = &updatedBy.String
	}
	return p, nil
}

func (r ProductRepository) findOne(where string, args ...any) (models.Product, error) {
	row := r.db().QueryRow(`
		SELECT `+productColumns+`
		FROM products
		WHERE `+where+` AND deleted_at IS NULL`, args...)
	return scanProduct(row)
}

// FindByID loads an active product by primary key.
func (r ProductRepository) FindByID(id uuid.UUID) (models.Product, error) {
	return r.findOne("id = $1", id)
}

// FindByIDAndBusiness loads an active product only if it belongs to the
// given business.
func (r ProductRepository) FindByIDAndBusiness(id, businessID uuid.UUID) (models.Product, error) {
	return r.findOne("id = $1 AND business_id = $2", id, businessID)
}

// ExistsSKU reports whether an active product in the business already
// carries the SKU.
func (r ProductRepository) ExistsSKU(businessID uuid.UUID, sku string) (bool, error) {
	var count int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM products
		WHERE business_id = $1 AND sku = $2 AND deleted_at IS NULL`, businessID, sku).Scan(&count)
	return count > 0, err
}

// ExistsSlug reports whether an active product in the business already
// uses the slug.
func (r ProductRepository) ExistsSlug(businessID uuid.UUID, slug string) (bool, error) {
	var count int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM products
		WHERE business_id = $1 AND slug = $2 AND deleted_at IS NULL`, businessID, slug).Scan(&count)
	return count > 0, err
}

// NextSequence returns the next per-business product sequence. Runs on
// the caller's transaction so the read and the insert share one lock
// scope.
func (r ProductRepository) NextSequence(conn intdb.Conn, businessID uuid.UUID) (int, error) {
	var next int
	err := conn.QueryRow(`
		SELECT COALESCE(MAX(product_sequence), 0) + 1
		FROM products
		WHERE business_id = $1`, businessID).Scan(&next)
	return next, err
}

// Create inserts a product on the caller's connection.
func (r ProductRepository) Create(conn intdb.Conn, p models.Product) (models.Product, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	err := conn.QueryRow(`
		INSERT INTO products (id, product_code, product_sequence, user_id, business_id, category_id,
		                      name, slug, description, product_type, base_price, selling_price,
		                      track_inventory, qty, min_stock, max_stock, sku,
		                      weight, length, width, height,
		                      is_active, is_featured, is_synced_to_marketplace, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING created_at
	`, p.ID, p.ProductCode, p.ProductSequence, p.UserID, p.BusinessID, p.CategoryID,
		p.Name, p.Slug, p.Description, p.ProductType, p.BasePrice, p.SellingPrice,
		p.TrackInventory, p.Qty, p.MinStock, p.MaxStock, p.SKU,
		p.Weight, p.Length, p.Width, p.Height,
		p.IsActive, p.IsFeatured, p.IsSyncedToMarketplace, p.CreatedBy,
	).Scan(&p.CreatedAt)
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Update persists the mutable fields. Code, sequence and SKU never
// change after creation.
func (r ProductRepository) Update(p models.Product) error {
	_, err := r.db().Exec(`
		UPDATE products
		SET category_id = $1, name = $2, slug = $3, description = $4,
		    base_price = $5, selling_price = $6,
		    track_inventory = $7, qty = $8, min_stock = $9, max_stock = $10,
		    weight = $11, length = $12, width = $13, height = $14,
		    is_active = $15, is_featured = $16, is_synced_to_marketplace = $17,
		    updated_at = now(), updated_by = $18
		WHERE id = $19 AND deleted_at IS NULL
	`, p.CategoryID, p.Name, p.Slug, p.Description,
		p.BasePrice, p.SellingPrice,
		p.TrackInventory, p.Qty, p.MinStock, p.MaxStock,
		p.Weight, p.Length, p.Width, p.Height,
		p.IsActive, p.IsFeatured, p.IsSyncedToMarketplace,
		p.UpdatedBy, p.ID)
	return err
}

// UpdateQty writes the cached quantity on the caller's connection.
// QtyForUpdate reads the stored quantity under a row lock, so the
// caller's ledger snapshot and quantity write see the same value.
func (r ProductRepository) QtyForUpdate(conn intdb.Conn, id uuid.UUID) (int, error) {
	var qty int
	err := conn.QueryRow(`
		SELECT COALESCE(qty, 0) FROM products
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`, id).Scan(&qty)
	return qty, err
}

func (r ProductRepository) UpdateQty(conn intdb.Conn, id uuid.UUID, qty int, updatedBy string) error {
	_, err := conn.Exec(`
		UPDATE products
		SET qty = $1, updated_at = now(), updated_by = $2
		WHERE id = $3 AND deleted_at IS NULL
	`, qty, updatedBy, id)
	return err
}

// SoftDelete stamps the product and cascades the stamp to its active
// variants inside the caller's transaction.
func (r ProductRepository) SoftDelete(conn intdb.Conn, id uuid.UUID, deletedBy string) error {
	res, err := conn.Exec(`
		UPDATE products
		SET deleted_at = now(), deleted_by = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, deletedBy, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	_, err = conn.Exec(`
		UPDATE product_variants
		SET deleted_at = now(), deleted_by = $1
		WHERE product_id = $2 AND deleted_at IS NULL
	`, deletedBy, id)
	return err
}
