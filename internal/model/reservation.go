package model

import "time"

// Reservation is a ledger record asserting that an account has claimed an item.
type Reservation struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	ReserverID string    `json:"reserver_id"`
	ReservedAt time.Time `json:"reserved_at"`

	// Joined fields (not always populated).
	ItemName     string `json:"item_name,omitempty"`
	ItemImageURL string `json:"item_image_url,omitempty"`
	OwnerName    string `json:"owner_name,omitempty"`
}
