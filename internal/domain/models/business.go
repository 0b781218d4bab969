package models

import "github.com/google/uuid"

// Business statuses.
const (
	BusinessStatusTrial     = "trial"
	BusinessStatusActive    = "active"
	BusinessStatusSuspended = "suspended"
)

type Business struct {
	ID             uuid.UUID `json:"id"`
	BusinessCode   string    `json:"business_code"`
	BusinessName   string    `json:"business_name"`
	ShopName       string    `json:"shop_name"`
	NameOwner      string    `json:"name_owner"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Address        *string   `json:"address,omitempty"`
	UserID         uuid.UUID `json:"user_id"`
	BusinessTypeID uuid.UUID `json:"business_type_id"`
	Status         string    `json:"status"`
	Audit

	// Populated by joined list queries.
	User         *User       `json:"user,omitempty"`
	BusinessType *MasterType `json:"business_type,omitempty"`
}
