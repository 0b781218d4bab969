package services

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"

	"github.com/google/uuid"
)

type AdjustStockInput struct {
	VariantID       *string `json:"variant_id,omitempty"`
	MovementType    string  `json:"movement_type"` // IN, OUT, ADJUSTMENT
	Quantity        int     `json:"quantity"`
	ReferenceType   *string `json:"reference_type,omitempty"`
	ReferenceID     *string `json:"reference_id,omitempty"`
	ReferenceNumber *string `json:"reference_number,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

type InventoryService struct {
	ProductRepo repositories.ProductRepository
	VariantRepo repositories.VariantRepository
	StockRepo   repositories.StockRepository
	Products    ProductService
	DB          *sql.DB
}

func (s InventoryService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s InventoryService) products() repositories.ProductRepository {
	if s.ProductRepo.DB != nil {
		return s.ProductRepo
	}
	return repositories.ProductRepository{DB: s.db()}
}

func (s InventoryService) variants() repositories.VariantRepository {
	if s.VariantRepo.DB != nil {
		return s.VariantRepo
	}
	return repositories.VariantRepository{DB: s.db()}
}

func (s InventoryService) stock() repositories.StockRepository {
	if s.StockRepo.DB != nil {
		return s.StockRepo
	}
	return repositories.StockRepository{DB: s.db()}
}

func (s InventoryService) productSvc() ProductService {
	if s.Products.DB != nil {
		return s.Products
	}
	return ProductService{DB: s.db()}
}

// Adjust applies one stock movement: the ledger row and the quantity
// write share a transaction, so the qty_before/qty_after snapshot can
// never drift from the stored quantity.
func (s InventoryService) Adjust(rc domain.RequestContext, businessID, productID string, in AdjustStockInput) (models.StockMovement, error) {
	product, err := s.productSvc().Get(rc, businessID, productID)
	if err != nil {
		return models.StockMovement{}, err
	}
	if !product.TrackInventory {
		return models.StockMovement{}, domain.ValidationError{Field: "product_id", Msg: "product does not track inventory"}
	}

	movementType := strings.ToUpper(strings.TrimSpace(in.MovementType))
	switch movementType {
	case models.MovementIn, models.MovementOut, models.MovementAdjustment:
	default:
		return models.StockMovement{}, domain.ValidationError{Field: "movement_type", Msg: "must be IN, OUT or ADJUSTMENT"}
	}
	if in.Quantity <= 0 && movementType != models.MovementAdjustment {
		return models.StockMovement{}, domain.ValidationError{Field: "quantity", Msg: "quantity must be positive"}
	}

	var variantID *uuid.UUID
	if in.VariantID != nil && strings.TrimSpace(*in.VariantID) != "" {
		vid, err := uuid.Parse(strings.TrimSpace(*in.VariantID))
		if err != nil {
			return models.StockMovement{}, domain.ValidationError{Field: "variant_id", Msg: "invalid id", Err: err}
		}
		variant, err := s.variants().FindByID(vid)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && variant.ProductID != product.ID) {
			return models.StockMovement{}, domain.NotFoundError{Resource: "variant", Err: err}
		}
		if err != nil {
			return models.StockMovement{}, domain.InternalError{Err: err}
		}
		variantID = &vid
	}

	var refID *uuid.UUID
	if in.ReferenceID != nil && strings.TrimSpace(*in.ReferenceID) != "" {
		rid, err := uuid.Parse(strings.TrimSpace(*in.ReferenceID))
		if err != nil {
			return models.StockMovement{}, domain.ValidationError{Field: "reference_id", Msg: "invalid id", Err: err}
		}
		refID = &rid
	}

	createdBy := rc.UserID
	var movement models.StockMovement
	err = intdb.WithinTx(s.db(), func(tx *sql.Tx) error {
		// The row lock keeps qty_before honest when two adjustments
		// race on the same product or variant.
		var qtyBefore int
		var err error
		if variantID != nil {
			qtyBefore, err = s.variants().QtyForUpdate(tx, *variantID)
		} else {
			qtyBefore, err = s.products().QtyForUpdate(tx, product.ID)
		}
		if err != nil {
			return domain.InternalError{Err: err}
		}

		qtyAfter := qtyBefore
		switch movementType {
		case models.MovementIn:
			qtyAfter = qtyBefore + in.Quantity
		case models.MovementOut:
			qtyAfter = qtyBefore - in.Quantity
		case models.MovementAdjustment:
			// Quantity carries the absolute target level.
			qtyAfter = in.Quantity
		}
		if qtyAfter < 0 {
			return domain.ValidationError{Field: "quantity", Msg: "insufficient stock"}
		}

		m, err := s.stock().Create(tx, models.StockMovement{
			ProductID:       product.ID,
			VariantID:       variantID,
			BusinessID:      product.BusinessID,
			MovementType:    movementType,
			Quantity:        in.Quantity,
			QtyBefore:       qtyBefore,
			QtyAfter:        qtyAfter,
			ReferenceType:   in.ReferenceType,
			ReferenceID:     refID,
			ReferenceNumber: in.ReferenceNumber,
			Notes:           in.Notes,
			CreatedBy:       &createdBy,
		})
		if err != nil {
			return domain.InternalError{Err: err}
		}

		if variantID != nil {
			err = s.variants().UpdateQty(tx, *variantID, qtyAfter, rc.UserID)
		} else {
			err = s.products().UpdateQty(tx, product.ID, qtyAfter, rc.UserID)
		}
		if err != nil {
			return domain.InternalError{Err: err}
		}

		movement = m
		return nil
	})
	if err != nil {
		return models.StockMovement{}, err
	}
	return movement, nil
}

// Movements returns the product's ledger history.
func (s InventoryService) Movements(rc domain.RequestContext, businessID, productID string, p domain.ListParams) ([]models.StockMovement, int, error) {
	product, err := s.productSvc().Get(rc, businessID, productID)
	if err != nil {
		return nil, 0, err
	}
	items, total, err := s.stock().ListByProduct(product.ID, p)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return items, total, nil
}
