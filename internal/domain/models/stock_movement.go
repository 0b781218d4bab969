package models

import (
	"time"

	"github.com/google/uuid"
)

// Movement types.
const (
	MovementIn         = "IN"
	MovementOut        = "OUT"
	MovementAdjustment = "ADJUSTMENT"
)

// StockMovement records one inventory change; qty_before/qty_after
// make the ledger auditable without replaying it.
type StockMovement struct {
	ID         uuid.UUID  `json:"id"`
	ProductID  uuid.UUID  `json:"product_id"`
	VariantID  *uuid.UUID `json:"variant_id,omitempty"`
	BusinessID uuid.UUID  `json:"business_id"`

	MovementType string `json:"movement_type"`
	Quantity     int    `json:"quantity"`
	QtyBefore    int    `json:"qty_before"`
	QtyAfter     int    `json:"qty_after"`

	ReferenceType   *string    `json:"reference_type,omitempty"`
	ReferenceID     *uuid.UUID `json:"reference_id,omitempty"`
	ReferenceNumber *string    `json:"reference_number,omitempty"`
	Notes           *string    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy *string   `json:"created_by,omitempty"`
}
