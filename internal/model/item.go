package model

import (
	"strings"
	"time"
)

// Item represents a single wishlist entry.
type Item struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    string   `json:"category,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	StoreURL    string   `json:"store_url,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	IsReserved  bool     `json:"is_reserved"`
	ReservedBy  *string  `json:"reserved_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidPriority reports whether p is an accepted priority value.
// The empty string is accepted (priority is optional).
func ValidPriority(p string) bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidItemName reports whether name is non-empty after trimming whitespace.
func ValidItemName(name string) bool {
	return strings.TrimSpace(name) != ""
}
