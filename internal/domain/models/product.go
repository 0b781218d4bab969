package models

import (
	"time"

	"github.com/google/uuid"
)

// Product types.
const (
	ProductTypeSimple   = "SIMPLE"
	ProductTypeVariable = "VARIABLE"
)

type Product struct {
	ID              uuid.UUID `json:"id"`
	ProductCode     string    `json:"product_code"` // BIZ000000000001-PROD-0001
	ProductSequence int       `json:"product_sequence"`

	UserID     uuid.UUID `json:"user_id"`
	BusinessID uuid.UUID `json:"business_id"`
	CategoryID *int64    `json:"category_id,omitempty"`

	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	ProductType string  `json:"product_type"`

	BasePrice    float64 `json:"base_price"`
	SellingPrice float64 `json:"selling_price"`

	TrackInventory bool    `json:"track_inventory"`
	Qty            *int    `json:"qty,omitempty"`
	MinStock       *int    `json:"min_stock,omitempty"`
	MaxStock       *int    `json:"max_stock,omitempty"`
	SKU            *string `json:"sku,omitempty"`

	Weight *float64 `json:"weight,omitempty"`
	Length *float64 `json:"length,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	IsActive              bool `json:"is_active"`
	IsFeatured            bool `json:"is_featured"`
	IsSyncedToMarketplace bool `json:"is_synced_to_marketplace"`

	Audit

	Variants   []ProductVariant   `json:"variants,omitempty"`
	Attributes []VariantAttribute `json:"variant_attributes,omitempty"`
}

type ProductVariant struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"product_id"`
	VariantCode     string    `json:"variant_code"` // {product_code}-VAR-0001
	VariantSequence int       `json:"variant_sequence"`
	VariantName     string    `json:"variant_name"` // "Large / Red"

	PriceAdjustment float64  `json:"price_adjustment"`
	SellingPrice    *float64 `json:"selling_price,omitempty"`

	SKU      string `json:"sku"`
	Qty      int    `json:"qty"`
	MinStock *int   `json:"min_stock,omitempty"`

	Weight *float64 `json:"weight,omitempty"`
	Length *float64 `json:"length,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	IsActive  bool `json:"is_active"`
	IsDefault bool `json:"is_default"`

	Audit
}

type VariantAttribute struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	AttributeName string    `json:"attribute_name"` // Size, Color, ...
	DisplayOrder  int       `json:"display_order"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     *string   `json:"created_by,omitempty"`

	Values []VariantAttributeValue `json:"values,omitempty"`
}

type VariantAttributeValue struct {
	ID           uuid.UUID `json:"id"`
	AttributeID  uuid.UUID `json:"attribute_id"`
	Value        string    `json:"value"`
	ColorCode    *string   `json:"color_code,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
