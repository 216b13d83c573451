package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkeza/giftlist/internal/model"
)

// itemColumns is the column list matched by scanItem.
const itemColumns = `id, owner_id, name, description, price, category, priority,
	store_url, image_url, is_reserved, reserved_by, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var description, category, priority, storeURL, imageURL, reservedBy sql.NullString
	var price sql.NullFloat64
	err := row.Scan(&item.ID, &item.OwnerID, &item.Name, &description, &price,
		&category, &priority, &storeURL, &imageURL,
		&item.IsReserved, &reservedBy, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Description = description.String
	item.Category = category.String
	item.Priority = priority.String
	item.StoreURL = storeURL.String
	item.ImageURL = imageURL.String
	if price.Valid {
		item.Price = &price.Float64
	}
	if reservedBy.Valid {
		item.ReservedBy = &reservedBy.String
	}
	return item, nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// nullable converts an empty string to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// CreateItem inserts a new item for its owner. The reservation flag always
// starts cleared; the item's ID is generated here.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) (*model.Item, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, owner_id, name, description, price, category, priority, store_url, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, item.OwnerID, item.Name, nullable(item.Description), item.Price,
		nullable(item.Category), nullable(item.Priority),
		nullable(item.StoreURL), nullable(item.ImageURL),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItemsByOwner returns all of an owner's items, newest first.
func ListItemsByOwner(ctx context.Context, db *sql.DB, ownerID string) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE owner_id = ? ORDER BY created_at DESC, rowid DESC`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListAvailableItemsByOwner returns an owner's unreserved items, newest first.
// This is the public view: reserved items are omitted so the owner's visitors
// (and the owner, on their shared page) can't see what has been claimed.
func ListAvailableItemsByOwner(ctx context.Context, db *sql.DB, ownerID string) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE owner_id = ? AND is_reserved = 0
		 ORDER BY created_at DESC, rowid DESC`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing available items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateItem updates an item's display fields. Reservation state is never
// touched here; only ReserveItem and CancelReservation change it.
func UpdateItem(ctx context.Context, db *sql.DB, item *model.Item) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, price = ?, category = ?,
		        priority = ?, store_url = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		item.Name, nullable(item.Description), item.Price, nullable(item.Category),
		nullable(item.Priority), nullable(item.StoreURL), nullable(item.ImageURL),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem removes an item and any reservation referencing it in a single
// transaction, so a reservation can never outlive its item.
func DeleteItem(ctx context.Context, db *sql.DB, id string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reservations WHERE item_id = ?`, id,
	); err != nil {
		return fmt.Errorf("deleting item reservation: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM items WHERE id = ?`, id,
	); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item delete: %w", err)
	}
	return nil
}

// SearchItems returns an owner's items whose name or description contains the
// query, case-insensitively, newest first.
func SearchItems(ctx context.Context, db *sql.DB, ownerID, query string) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE owner_id = ?
		   AND (instr(lower(name), lower(?)) > 0
		        OR instr(lower(COALESCE(description, '')), lower(?)) > 0)
		 ORDER BY created_at DESC, rowid DESC`,
		ownerID, query, query,
	)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// FilterItems returns an owner's items matching the given category and/or
// priority exactly. Empty filters match everything.
func FilterItems(ctx context.Context, db *sql.DB, ownerID, category, priority string) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ?`
	args := []any{ownerID}

	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	if priority != "" {
		query += ` AND priority = ?`
		args = append(args, priority)
	}

	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filtering items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}
