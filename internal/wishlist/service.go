// Package wishlist holds the service that owns all item and reservation state
// changes. Going through it keeps the item flag and the reservation ledger in
// lockstep: a reservation row exists exactly when its item is marked reserved.
package wishlist

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mkeza/giftlist/internal/model"
	"github.com/mkeza/giftlist/internal/store"
	"github.com/mkeza/giftlist/internal/wisherrors"
)

// Service coordinates item and reservation state over the backing store.
type Service struct {
	db *sql.DB
}

// NewService creates a wishlist service backed by the given database.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// ItemInput carries the owner-editable item fields.
type ItemInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	StoreURL    string   `json:"store_url"`
	ImageURL    string   `json:"image_url"`
}

func (in *ItemInput) validate() error {
	if !model.ValidItemName(in.Name) {
		return fmt.Errorf("%w: name required", wisherrors.ErrInvalidInput)
	}
	if in.Price != nil && *in.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", wisherrors.ErrInvalidInput)
	}
	if !model.ValidPriority(in.Priority) {
		return fmt.Errorf("%w: priority must be low, medium or high", wisherrors.ErrInvalidInput)
	}
	return nil
}

// CreateItem adds a new item to the owner's wishlist. New items are never
// reserved.
func (s *Service) CreateItem(ctx context.Context, ownerID string, in ItemInput) (*model.Item, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	item := &model.Item{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Priority:    in.Priority,
		StoreURL:    in.StoreURL,
		ImageURL:    in.ImageURL,
	}
	return store.CreateItem(ctx, s.db, item)
}

// ItemUpdate carries a partial item update; nil fields are left unchanged.
type ItemUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Priority    *string  `json:"priority"`
	StoreURL    *string  `json:"store_url"`
	ImageURL    *string  `json:"image_url"`
}

// UpdateItem merges the given fields into an existing item. Only the owner may
// edit; reservation state is never touched here.
func (s *Service) UpdateItem(ctx context.Context, itemID, ownerID string, upd ItemUpdate) (*model.Item, error) {
	item, err := store.GetItem(ctx, s.db, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, wisherrors.ErrItemNotFound
	}
	if item.OwnerID != ownerID {
		return nil, wisherrors.ErrNotOwner
	}

	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Price != nil {
		item.Price = upd.Price
	}
	if upd.Category != nil {
		item.Category = *upd.Category
	}
	if upd.Priority != nil {
		item.Priority = *upd.Priority
	}
	if upd.StoreURL != nil {
		item.StoreURL = *upd.StoreURL
	}
	if upd.ImageURL != nil {
		item.ImageURL = *upd.ImageURL
	}

	merged := ItemInput{
		Name:     item.Name,
		Price:    item.Price,
		Priority: item.Priority,
	}
	if err := merged.validate(); err != nil {
		return nil, err
	}
	item.Name = strings.TrimSpace(item.Name)

	if err := store.UpdateItem(ctx, s.db, item); err != nil {
		return nil, err
	}
	return store.GetItem(ctx, s.db, itemID)
}

// DeleteItem removes an owner's item together with any reservation on it.
func (s *Service) DeleteItem(ctx context.Context, itemID, ownerID string) error {
	item, err := store.GetItem(ctx, s.db, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return wisherrors.ErrItemNotFound
	}
	if item.OwnerID != ownerID {
		return wisherrors.ErrNotOwner
	}

	return store.DeleteItem(ctx, s.db, itemID)
}

// Reserve claims an item for the given account. Owners cannot reserve their
// own items. If the item is already claimed the caller gets
// ErrAlreadyReserved, including on a retry of a reserve that already went
// through.
func (s *Service) Reserve(ctx context.Context, itemID, reserverID string) (*model.Reservation, error) {
	item, err := store.GetItem(ctx, s.db, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, wisherrors.ErrItemNotFound
	}
	if item.OwnerID == reserverID {
		return nil, wisherrors.ErrOwnItem
	}

	return store.ReserveItem(ctx, s.db, itemID, reserverID)
}

// Cancel releases an item's reservation. Any authenticated account may cancel,
// not only the reserver; a cancel on an unreserved item reports ErrNotReserved
// and changes nothing.
func (s *Service) Cancel(ctx context.Context, itemID string) error {
	return store.CancelReservation(ctx, s.db, itemID)
}

// OwnItem returns one of the account's own items. Items owned by someone else
// are reported as not found rather than forbidden, so item ids can't be probed.
func (s *Service) OwnItem(ctx context.Context, itemID, ownerID string) (*model.Item, error) {
	item, err := store.GetItem(ctx, s.db, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OwnerID != ownerID {
		return nil, wisherrors.ErrItemNotFound
	}
	return item, nil
}

// ItemsOwnedBy returns all of an account's items, newest first, regardless of
// reservation state.
func (s *Service) ItemsOwnedBy(ctx context.Context, ownerID string) ([]model.Item, error) {
	return store.ListItemsByOwner(ctx, s.db, ownerID)
}

// PublicView returns the owner's shareable list: unreserved items only, so
// visitors (and the owner) can't tell what has been claimed. An unknown or
// empty owner id yields an empty list, not an error.
func (s *Service) PublicView(ctx context.Context, ownerID string) ([]model.Item, error) {
	if ownerID == "" {
		return nil, nil
	}
	return store.ListAvailableItemsByOwner(ctx, s.db, ownerID)
}

// ReservationsBy returns the account's active reservations with current item
// and owner display fields.
func (s *Service) ReservationsBy(ctx context.Context, accountID string) ([]model.Reservation, error) {
	return store.ListReservationsByReserver(ctx, s.db, accountID)
}

// Search returns the account's own items whose name or description contains
// the query, case-insensitively. An empty query matches everything.
func (s *Service) Search(ctx context.Context, ownerID, query string) ([]model.Item, error) {
	return store.SearchItems(ctx, s.db, ownerID, query)
}

// Filter returns the account's own items matching the given category and/or
// priority exactly.
func (s *Service) Filter(ctx context.Context, ownerID, category, priority string) ([]model.Item, error) {
	if priority != "" && !model.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: priority must be low, medium or high", wisherrors.ErrInvalidInput)
	}
	return store.FilterItems(ctx, s.db, ownerID, category, priority)
}

// DeleteAccount removes an account: reservations it made are released, its
// items are deleted, and reservations others held on those items go with them.
func (s *Service) DeleteAccount(ctx context.Context, accountID string) error {
	user, err := store.GetUser(ctx, s.db, accountID)
	if err != nil {
		return err
	}
	if user == nil {
		return wisherrors.ErrUserNotFound
	}

	return store.DeleteUser(ctx, s.db, accountID)
}
