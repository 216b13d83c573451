package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkeza/giftlist/internal/model"
	"github.com/mkeza/giftlist/internal/wisherrors"
)

// reservationQuery selects reservations joined with current item and owner
// display fields, so callers never see stale denormalized copies.
const reservationQuery = `
	SELECT r.id, r.item_id, r.reserver_id, r.reserved_at,
	       i.name AS item_name, COALESCE(i.image_url, '') AS item_image_url,
	       u.display_name AS owner_name
	FROM reservations r
	JOIN items i ON i.id = r.item_id
	JOIN users u ON u.id = i.owner_id`

// ReserveItem marks an item reserved and records the ledger row, both in one
// transaction. The flag is set with a conditional update so that of two
// concurrent reservers exactly one wins; the loser gets ErrAlreadyReserved.
func ReserveItem(ctx context.Context, db *sql.DB, itemID, reserverID string) (*model.Reservation, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE items SET is_reserved = 1, reserved_by = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND is_reserved = 0`,
		reserverID, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("marking item reserved: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking reserve result: %w", err)
	}
	if affected == 0 {
		// Either the item doesn't exist or someone got there first.
		var reserved bool
		err := tx.QueryRowContext(ctx,
			`SELECT is_reserved FROM items WHERE id = ?`, itemID,
		).Scan(&reserved)
		if err == sql.ErrNoRows {
			return nil, wisherrors.ErrItemNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("checking item state: %w", err)
		}
		return nil, wisherrors.ErrAlreadyReserved
	}

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (id, item_id, reserver_id) VALUES (?, ?, ?)`,
		id, itemID, reserverID,
	); err != nil {
		return nil, fmt.Errorf("recording reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing reservation: %w", err)
	}

	return GetReservation(ctx, db, id)
}

// CancelReservation clears an item's reservation flag and deletes the matching
// ledger row in one transaction. Returns ErrNotReserved if the item wasn't
// reserved, so a repeated cancel is a clean no-op for the caller to ignore.
func CancelReservation(ctx context.Context, db *sql.DB, itemID string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE items SET is_reserved = 0, reserved_by = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND is_reserved = 1`,
		itemID,
	)
	if err != nil {
		return fmt.Errorf("clearing item reservation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking cancel result: %w", err)
	}
	if affected == 0 {
		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) > 0 FROM items WHERE id = ?`, itemID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking item state: %w", err)
		}
		if !exists {
			return wisherrors.ErrItemNotFound
		}
		return wisherrors.ErrNotReserved
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reservations WHERE item_id = ?`, itemID,
	); err != nil {
		return fmt.Errorf("deleting reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cancellation: %w", err)
	}
	return nil
}

// GetReservation returns a reservation by ID with joined display fields.
func GetReservation(ctx context.Context, db *sql.DB, id string) (*model.Reservation, error) {
	r := &model.Reservation{}
	err := db.QueryRowContext(ctx, reservationQuery+` WHERE r.id = ?`, id).Scan(
		&r.ID, &r.ItemID, &r.ReserverID, &r.ReservedAt,
		&r.ItemName, &r.ItemImageURL, &r.OwnerName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting reservation: %w", err)
	}
	return r, nil
}

// GetReservationByItem returns the active reservation for an item, if any.
func GetReservationByItem(ctx context.Context, db *sql.DB, itemID string) (*model.Reservation, error) {
	r := &model.Reservation{}
	err := db.QueryRowContext(ctx, reservationQuery+` WHERE r.item_id = ?`, itemID).Scan(
		&r.ID, &r.ItemID, &r.ReserverID, &r.ReservedAt,
		&r.ItemName, &r.ItemImageURL, &r.OwnerName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item reservation: %w", err)
	}
	return r, nil
}

// ListReservationsByReserver returns all active reservations made by an
// account, newest first.
func ListReservationsByReserver(ctx context.Context, db *sql.DB, reserverID string) ([]model.Reservation, error) {
	rows, err := db.QueryContext(ctx,
		reservationQuery+` WHERE r.reserver_id = ? ORDER BY r.reserved_at DESC, r.rowid DESC`,
		reserverID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	defer rows.Close()

	var reservations []model.Reservation
	for rows.Next() {
		var r model.Reservation
		if err := rows.Scan(&r.ID, &r.ItemID, &r.ReserverID, &r.ReservedAt,
			&r.ItemName, &r.ItemImageURL, &r.OwnerName); err != nil {
			return nil, fmt.Errorf("scanning reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}
