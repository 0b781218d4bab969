package models

import "github.com/google/uuid"

type OrderSecret struct {
	ID                    uuid.UUID `json:"id"`
	OrderSecretID         string    `json:"order_secret_id"`
	CategoryMarketplaceID uuid.UUID `json:"category_marketplace_id"`
	Message               *string   `json:"message,omitempty"`
	Emotional             *string   `json:"emotional,omitempty"`
	FromName              *string   `json:"from_name,omitempty"`
	Audit

	CategoryMarketplace *CategoryMarketplace `json:"category_marketplace,omitempty"`
}
