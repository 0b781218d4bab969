package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"

	"github.com/google/uuid"
)

type VariantAttributeInput struct {
	Name         string                       `json:"name"`
	DisplayOrder int                          `json:"display_order"`
	Values       []VariantAttributeValueInput `json:"values"`
}

type VariantAttributeValueInput struct {
	Value        string  `json:"value"`
	ColorCode    *string `json:"color_code,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	DisplayOrder int     `json:"display_order"`
}

type VariantInput struct {
	VariantName     string   `json:"variant_name"`
	PriceAdjustment float64  `json:"price_adjustment"`
	SellingPrice    *float64 `json:"selling_price,omitempty"`
	SKU             string   `json:"sku"`
	Qty             int      `json:"qty"`
	MinStock        *int     `json:"min_stock,omitempty"`

	Weight *float64 `json:"weight,omitempty"`
	Length *float64 `json:"length,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	IsActive  *bool `json:"is_active,omitempty"`
	IsDefault bool  `json:"is_default"`
}

type CreateProductInput struct {
	BusinessID  string  `json:"business_id"`
	CategoryID  *int64  `json:"category_id,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	BasePrice    float64 `json:"base_price"`
	SellingPrice float64 `json:"selling_price"`

	TrackInventory *bool   `json:"track_inventory,omitempty"`
	Qty            *int    `json:"qty,omitempty"`
	MinStock       *int    `json:"min_stock,omitempty"`
	MaxStock       *int    `json:"max_stock,omitempty"`
	SKU            *string `json:"sku,omitempty"`

	Weight *float64 `json:"weight,omitempty"`
	Length *float64 `json:"length,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	IsFeatured bool `json:"is_featured"`

	Attributes []VariantAttributeInput `json:"variant_attributes,omitempty"`
	Variants   []VariantInput          `json:"variants,omitempty"`
}

type UpdateProductInput struct {
	CategoryID  *int64  `json:"category_id,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	BasePrice    *float64 `json:"base_price,omitempty"`
	SellingPrice *float64 `json:"selling_price,omitempty"`

	TrackInventory *bool `json:"track_inventory,omitempty"`
	MinStock       *int  `json:"min_stock,omitempty"`
	MaxStock       *int  `json:"max_stock,omitempty"`

	Weight *float64 `json:"weight,omitempty"`
	Length *float64 `json:"length,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	IsActive   *bool `json:"is_active,omitempty"`
	IsFeatured *bool `json:"is_featured,omitempty"`
}

type ProductService struct {
	ProductRepo  repositories.ProductRepository
	VariantRepo  repositories.VariantRepository
	BusinessRepo repositories.BusinessRepository
	CategoryRepo repositories.CategoryRepository
	DB           *sql.DB
}

func (s ProductService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ProductService) products() repositories.ProductRepository {
	if s.ProductRepo.DB != nil {
		return s.ProductRepo
	}
	return repositories.ProductRepository{DB: s.db()}
}

func (s ProductService) variants() repositories.VariantRepository {
	if s.VariantRepo.DB != nil {
		return s.VariantRepo
	}
	return repositories.VariantRepository{DB: s.db()}
}

func (s ProductService) businesses() repositories.BusinessRepository {
	if s.BusinessRepo.DB != nil {
		return s.BusinessRepo
	}
	return repositories.BusinessRepository{DB: s.db()}
}

func (s ProductService) categories() repositories.CategoryRepository {
	if s.CategoryRepo.DB != nil {
		return s.CategoryRepo
	}
	return repositories.CategoryRepository{DB: s.db()}
}

// ownedBusiness loads the business the caller is operating on; admins
// may touch any business.
func (s ProductService) ownedBusiness(rc domain.RequestContext, businessID string) (models.Business, error) {
	bid, err := uuid.Parse(strings.TrimSpace(businessID))
	if err != nil {
		return models.Business{}, domain.ValidationError{Field: "business_id", Msg: "invalid id", Err: err}
	}

	var b models.Business
	if rc.Role == models.RoleAdmin {
		b, err = s.businesses().FindByID(bid)
	} else {
		var userID uuid.UUID
		userID, err = uuid.Parse(rc.UserID)
		if err != nil {
			return models.Business{}, domain.UnauthorizedError{Msg: "invalid token subject", Err: err}
		}
		b, err = s.businesses().FindByIDAndUser(bid, userID)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.Business{}, domain.NotFoundError{Resource: "business", Err: err}
	}
	if err != nil {
		return models.Business{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// Create builds the product, its attribute matrix and its variants in
// one transaction. Codes derive from the per-business sequence:
// {business_code}-PROD-0001, variants {product_code}-VAR-0001.
func (s ProductService) Create(rc domain.RequestContext, in CreateProductInput) (models.Product, error) {
	business, err := s.ownedBusiness(rc, in.BusinessID)
	if err != nil {
		return models.Product{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Product{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	if in.BasePrice < 0 {
		return models.Product{}, domain.ValidationError{Field: "base_price", Msg: "price cannot be negative"}
	}
	if in.SellingPrice < 0 {
		return models.Product{}, domain.ValidationError{Field: "selling_price", Msg: "price cannot be negative"}
	}
	if in.CategoryID != nil {
		if _, err := s.categories().FindByID(*in.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.Product{}, domain.NotFoundError{Resource: "category", Err: err}
			}
			return models.Product{}, domain.InternalError{Err: err}
		}
	}

	productType := models.ProductTypeSimple
	if len(in.Variants) > 0 {
		productType = models.ProductTypeVariable
	}

	for i, v := range in.Variants {
		if strings.TrimSpace(v.VariantName) == "" {
			return models.Product{}, domain.ValidationError{Field: fmt.Sprintf("variants[%d].variant_name", i), Msg: "variant name is required"}
		}
		if v.Qty < 0 {
			return models.Product{}, domain.ValidationError{Field: fmt.Sprintf("variants[%d].qty", i), Msg: "qty cannot be negative"}
		}
	}

	slug := utils.Slugify(name)
	slugTaken, err := s.products().ExistsSlug(business.ID, slug)
	if err != nil {
		return models.Product{}, domain.InternalError{Err: err}
	}
	if slugTaken {
		return models.Product{}, domain.ConflictError{Resource: "product", Msg: "a product with this name already exists"}
	}

	createdBy := rc.UserID
	var created models.Product
	err = intdb.WithinTx(s.db(), func(tx *sql.Tx) error {
		seq, err := s.products().NextSequence(tx, business.ID)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		code := fmt.Sprintf("%s-PROD-%04d", business.BusinessCode, seq)

		sku := "SKU-" + code
		if in.SKU != nil && strings.TrimSpace(*in.SKU) != "" {
			sku = strings.TrimSpace(*in.SKU)
		}
		skuTaken, err := s.products().ExistsSKU(business.ID, sku)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		if skuTaken {
			return domain.ConflictError{Resource: "product", Msg: "sku already exists"}
		}

		trackInventory := true
		if in.TrackInventory != nil {
			trackInventory = *in.TrackInventory
		}
		qty := in.Qty
		if productType == models.ProductTypeVariable {
			// Variable products keep stock on the variants.
			qty = nil
		}

		userID, err := uuid.Parse(rc.UserID)
		if err != nil {
			return domain.UnauthorizedError{Msg: "invalid token subject", Err: err}
		}

		p, err := s.products().Create(tx, models.Product{
			ProductCode:     code,
			ProductSequence: seq,
			UserID:          userID,
			BusinessID:      business.ID,
			CategoryID:      in.CategoryID,
			Name:            name,
			Slug:            slug,
			Description:     in.Description,
			ProductType:     productType,
			BasePrice:       in.BasePrice,
			SellingPrice:    in.SellingPrice,
			TrackInventory:  trackInventory,
			Qty:             qty,
			MinStock:        in.MinStock,
			MaxStock:        in.MaxStock,
			SKU:             &sku,
			Weight:          in.Weight,
			Length:          in.Length,
			Width:           in.Width,
			Height:          in.Height,
			IsActive:        true,
			IsFeatured:      in.IsFeatured,
			Audit:           models.Audit{CreatedBy: &createdBy},
		})
		if err != nil {
			return domain.InternalError{Err: err}
		}

		for _, attrIn := range in.Attributes {
			attrName := strings.TrimSpace(attrIn.Name)
			if attrName == "" {
				continue
			}
			attr, err := s.variants().CreateAttribute(tx, models.VariantAttribute{
				ProductID:     p.ID,
				AttributeName: attrName,
				DisplayOrder:  attrIn.DisplayOrder,
				CreatedBy:     &createdBy,
			})
			if err != nil {
				return domain.InternalError{Err: err}
			}
			for _, valIn := range attrIn.Values {
				value := strings.TrimSpace(valIn.Value)
				if value == "" {
					continue
				}
				val, err := s.variants().CreateAttributeValue(tx, models.VariantAttributeValue{
					AttributeID:  attr.ID,
					Value:        value,
					ColorCode:    valIn.ColorCode,
					ImageURL:     valIn.ImageURL,
					DisplayOrder: valIn.DisplayOrder,
					IsActive:     true,
				})
				if err != nil {
					return domain.InternalError{Err: err}
				}
				attr.Values = append(attr.Values, val)
			}
			p.Attributes = append(p.Attributes, attr)
		}

		for i, vIn := range in.Variants {
			variantSeq := i + 1
			variantCode := fmt.Sprintf("%s-VAR-%04d", code, variantSeq)
			variantSKU := strings.TrimSpace(vIn.SKU)
			if variantSKU == "" {
				variantSKU = "SKU-" + variantCode
			} else {
				taken, err := s.variants().ExistsSKU(variantSKU)
				if err != nil {
					return domain.InternalError{Err: err}
				}
				if taken {
					return domain.ConflictError{Resource: "variant", Msg: "sku already exists"}
				}
			}
			active := true
			if vIn.IsActive != nil {
				active = *vIn.IsActive
			}
			v, err := s.variants().Create(tx, models.ProductVariant{
				ProductID:       p.ID,
				VariantCode:     variantCode,
				VariantSequence: variantSeq,
				VariantName:     strings.TrimSpace(vIn.VariantName),
				PriceAdjustment: vIn.PriceAdjustment,
				SellingPrice:    vIn.SellingPrice,
				SKU:             variantSKU,
				Qty:             vIn.Qty,
				MinStock:        vIn.MinStock,
				Weight:          vIn.Weight,
				Length:          vIn.Length,
				Width:           vIn.Width,
				Height:          vIn.Height,
				IsActive:        active,
				IsDefault:       vIn.IsDefault || (i == 0 && !anyDefault(in.Variants)),
				Audit:           models.Audit{CreatedBy: &createdBy},
			})
			if err != nil {
				return domain.InternalError{Err: err}
			}
			p.Variants = append(p.Variants, v)
		}

		created = p
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return created, nil
}

func anyDefault(variants []VariantInput) bool {
	for _, v := range variants {
		if v.IsDefault {
			return true
		}
	}
	return false
}

// List returns the business's products through the dynamic query.
func (s ProductService) List(rc domain.RequestContext, businessID string, p domain.ListParams) ([]models.Product, int, error) {
	business, err := s.ownedBusiness(rc, businessID)
	if err != nil {
		return nil, 0, err
	}
	items, total, err := s.products().List(business.ID, p)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return items, total, nil
}

// Get loads one product with its variants and attribute matrix.
func (s ProductService) Get(rc domain.RequestContext, businessID, id string) (models.Product, error) {
	business, err := s.ownedBusiness(rc, businessID)
	if err != nil {
		return models.Product{}, err
	}
	pid, err := uuid.Parse(id)
	if err != nil {
		return models.Product{}, domain.ValidationError{Field: "id", Msg: "invalid id", Err: err}
	}

	p, err := s.products().FindByIDAndBusiness(pid, business.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, domain.NotFoundError{Resource: "product", Err: err}
	}
	if err != nil {
		return models.Product{}, domain.InternalError{Err: err}
	}

	if p.ProductType == models.ProductTypeVariable {
		if p.Variants, err = s.variants().ListByProduct(p.ID); err != nil {
			return models.Product{}, domain.InternalError{Err: err}
		}
		if p.Attributes, err = s.variants().ListAttributesByProduct(p.ID); err != nil {
			return models.Product{}, domain.InternalError{Err: err}
		}
	}
	return p, nil
}

// Update rewrites the mutable fields. Code, sequence and SKU are fixed
// at creation; renaming keeps the original slug so URLs stay stable.
func (s ProductService) Update(rc domain.RequestContext, businessID, id string, in UpdateProductInput) (models.Product, error) {
	p, err := s.Get(rc, businessID, id)
	if err != nil {
		return models.Product{}, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		p.Name = name
	}
	if in.CategoryID != nil {
		if _, err := s.categories().FindByID(*in.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.Product{}, domain.NotFoundError{Resource: "category", Err: err}
			}
			return models.Product{}, domain.InternalError{Err: err}
		}
		p.CategoryID = in.CategoryID
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.BasePrice != nil {
		if *in.BasePrice < 0 {
			return models.Product{}, domain.ValidationError{Field: "base_price", Msg: "price cannot be negative"}
		}
		p.BasePrice = *in.BasePrice
	}
	if in.SellingPrice != nil {
		if *in.SellingPrice < 0 {
			return models.Product{}, domain.ValidationError{Field: "selling_price", Msg: "price cannot be negative"}
		}
		p.SellingPrice = *in.SellingPrice
	}
	if in.TrackInventory != nil {
		p.TrackInventory = *in.TrackInventory
	}
	if in.MinStock != nil {
		p.MinStock = in.MinStock
	}
	if in.MaxStock != nil {
		p.MaxStock = in.MaxStock
	}
	if in.Weight != nil {
		p.Weight = in.Weight
	}
	if in.Length != nil {
		p.Length = in.Length
	}
	if in.Width != nil {
		p.Width = in.Width
	}
	if in.Height != nil {
		p.Height = in.Height
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}

	updatedBy := rc.UserID
	p.UpdatedBy = &updatedBy
	if err := s.products().Update(p); err != nil {
		return models.Product{}, domain.InternalError{Err: err}
	}
	return s.Get(rc, businessID, id)
}

// Delete soft-deletes the product and its variants together.
func (s ProductService) Delete(rc domain.RequestContext, businessID, id string) error {
	p, err := s.Get(rc, businessID, id)
	if err != nil {
		return err
	}
	err = intdb.WithinTx(s.db(), func(tx *sql.Tx) error {
		if err := s.products().SoftDelete(tx, p.ID, rc.UserID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFoundError{Resource: "product", Err: err}
			}
			return domain.InternalError{Err: err}
		}
		return nil
	})
	return err
}
