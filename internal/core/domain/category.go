package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is an owner-scoped event label with a display color. Events copy
// the color when they are created, so deleting a category never rewrites
// already-stored events.
type Category struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Label     string    `json:"label"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	BuiltIn   bool      `json:"built_in,omitempty"`
}

// DefaultCategories are shown to owners who have not stored any of their own.
func DefaultCategories(ownerID uuid.UUID) []Category {
	return []Category{
		{OwnerID: ownerID, Label: "work", Color: "#3b82f6", BuiltIn: true},
		{OwnerID: ownerID, Label: "personal", Color: "#22c55e", BuiltIn: true},
		{OwnerID: ownerID, Label: "important", Color: "#ef4444", BuiltIn: true},
	}
}
