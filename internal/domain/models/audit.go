package models

import "time"

// Audit carries the create/update/delete stamps shared by every
// entity. A nil DeletedAt means the row is active; soft-deleted rows
// stay in place and are excluded by list queries.
type Audit struct {
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy *string    `json:"created_by,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	UpdatedBy *string    `json:"updated_by,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *string    `json:"deleted_by,omitempty"`
}
