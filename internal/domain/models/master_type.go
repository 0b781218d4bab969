package models

import "github.com/google/uuid"

// MasterType is one row of the shared lookup table; group_code buckets
// rows per consumer (BUSINESS, PRODUCT, ORDER, USER).
type MasterType struct {
	ID          uuid.UUID `json:"id"`
	GroupCode   string    `json:"group_code"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	Audit
}
