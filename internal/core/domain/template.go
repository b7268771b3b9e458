package domain

import "time"

// Template is a saved canvas layout. Elements is an opaque JSON array: the
// backend stores and returns it verbatim, rendering semantics live in the
// frontend editor.
type Template struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Elements    []map[string]any `json:"elements"`
	CreatedBy   int64            `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}
