package models

import "backoffice/internal/query"

// Static query descriptors, one per listable/joinable entity. The
// query builder resolves every field token against these instead of
// reflecting over the structs above, so "which fields are searchable"
// is decided here, once.

var UserEntity = query.NewEntity("User", "users", true, []query.Column{
	{Name: "id"},
	{Name: "name", Text: true},
	{Name: "email", Text: true},
	{Name: "username", Text: true},
	{Name: "role", Text: true},
	{Name: "created_at"},
	{Name: "updated_at", Nullable: true},
})

// UserJoinColumns is the allowlist for eager-loading users through a
// join; the password hash must never travel through one.
var UserJoinColumns = []string{"id", "name", "username", "email", "role"}

var BusinessEntity = query.NewEntity("Business", "businesses", true, []query.Column{
	{Name: "id"},
	{Name: "business_code", Text: true},
	{Name: "business_name", Text: true},
	{Name: "shop_name", Text: true},
	{Name: "name_owner", Text: true},
	{Name: "phone", Text: true},
	{Name: "email", Text: true},
	{Name: "address", Text: true, Nullable: true},
	{Name: "user_id"},
	{Name: "business_type_id"},
	{Name: "status", Text: true},
	{Name: "created_at"},
	{Name: "created_by", Text: true, Nullable: true},
	{Name: "updated_at", Nullable: true},
	{Name: "updated_by", Text: true, Nullable: true},
})

var MasterTypeEntity = query.NewEntity("MasterType", "master_types", true, []query.Column{
	{Name: "id"},
	{Name: "group_code", Text: true},
	{Name: "code", Text: true},
	{Name: "name", Text: true},
	{Name: "description", Text: true, Nullable: true},
	{Name: "is_active"},
	{Name: "created_at"},
	{Name: "created_by", Text: true, Nullable: true},
	{Name: "updated_at", Nullable: true},
	{Name: "updated_by", Text: true, Nullable: true},
})

var CategoryEntity = query.NewEntity("Category", "categories", true, []query.Column{
	{Name: "id"},
	{Name: "name", Text: true},
	{Name: "description", Text: true, Nullable: true},
	{Name: "created_at"},
	{Name: "created_by", Text: true, Nullable: true},
	{Name: "updated_at", Nullable: true},
	{Name: "updated_by", Text: true, Nullable: true},
})

var CategoryMarketplaceEntity = query.NewEntity("CategoryMarketplace", "category_marketplaces", true, []query.Column{
	{Name: "id"},
	{Name: "name", Text: true},
	{Name: "description", Text: true, Nullable: true},
	{Name: "created_at"},
	{Name: "created_by", Text: true, Nullable: true},
	{Name: "updated_at", Nullable: true},
	{Name: "updated_by", Text: true, Nullable: true},
})

var OrderSecretEntity = query.NewEntity("OrderSecret", "order_secrets", true, []query.Column{
	{Name: "id"},
	{Name: "order_secret_id", Text: true},
	{Name: "category_marketplace_id"},
	{Name: "message", Text: true, Nullable: true},
	{Name: "emotional", Text: true, Nullable: true},
	{Name: "from_name", Text: true, Nullable: true},
	{Name: "created_at"},
	{Name: "created_by", Text: true, Nullable: true},
	{Name: "updated_at", Nullable: true},
	{Name: "updated_by", Text: true, Nullable: true},
})

var ProductEntity = query.NewEntity("Product", "products", true, []query.Column{
	{Name: "id"},
	{Name: "product_code", Text: true},
	{Name: "product_sequence"},
	{Name: "user_id"},
	{Name: "business_id"},
	{Name: "category_id", Nullable: true},
	{Name: "name", Text: true},
	{Name: "slug", Text: true},
	{Name: "description", Text: true, Nullable: true},
	{Name: "product_type", Text: true},
	{Name: "base_price"},
	{Name: "selling_price"},
	{Name: "track_inventory"},
	{Name: "qty", Nullable: true},
	{Name: "min_stock", Nullable: true},
	{Name: "max_stock", Nullable: true},
	{Name: "sku", Text: true, Nullable: true},
	{Name: "weight", Nullable: true},
	{Name: "length", Nullable: true},
	{Name: "width", Nullable: true},
	{Name: "height", Nullable: true},
	{Name: "is_active"},
	{Name: "is_featured"},
	{Name: "is_synced_to_marketplace"},
	{Name: "created_at"},
	{Name: "created_by", Text: true, Nullable: true},
	{Name: "updated_at", Nullable: true},
	{Name: "updated_by", Text: true, Nullable: true},
})

var ProductVariantEntity = query.NewEntity("ProductVariant", "product_variants", true, []query.Column{
	{Name: "id"},
	{Name: "product_id"},
	{Name: "variant_code", Text: true},
	{Name: "variant_sequence"},
	{Name: "variant_name", Text: true},
	{Name: "price_adjustment"},
	{Name: "selling_price", Nullable: true},
	{Name: "sku", Text: true},
	{Name: "qty"},
	{Name: "min_stock", Nullable: true},
	{Name: "is_active"},
	{Name: "is_default"},
	{Name: "created_at"},
	{Name: "created_by", Text: true, Nullable: true},
	{Name: "updated_at", Nullable: true},
	{Name: "updated_by", Text: true, Nullable: true},
})

var StockMovementEntity = query.NewEntity("StockMovement", "stock_movements", false, []query.Column{
	{Name: "id"},
	{Name: "product_id"},
	{Name: "variant_id", Nullable: true},
	{Name: "business_id"},
	{Name: "movement_type", Text: true},
	{Name: "quantity"},
	{Name: "qty_before"},
	{Name: "qty_after"},
	{Name: "reference_type", Text: true, Nullable: true},
	{Name: "reference_id", Nullable: true},
	{Name: "reference_number", Text: true, Nullable: true},
	{Name: "notes", Text: true, Nullable: true},
	{Name: "created_at"},
	{Name: "created_by", Text: true, Nullable: true},
})
