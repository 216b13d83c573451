package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mkeza/giftlist/internal/model"
	"github.com/mkeza/giftlist/internal/wisherrors"
)

const userColumns = `id, email, password_hash, display_name, birth_date, avatar_mime, created_at, updated_at`

func scanUser(row rowScanner) (*model.User, error) {
	u := &model.User{}
	var birthDate, avatarMime sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName,
		&birthDate, &avatarMime, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if birthDate.Valid {
		u.BirthDate = &birthDate.String
	}
	u.AvatarMime = avatarMime.String
	return u, nil
}

// CreateUser creates a new account. Returns ErrEmailTaken if the email is
// already registered.
func CreateUser(ctx context.Context, db *sql.DB, email, passwordHash, displayName string, birthDate *string) (*model.User, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, display_name, birth_date)
		 VALUES (?, ?, ?, ?, ?)`,
		id, email, passwordHash, displayName, birthDate,
	)
	if err != nil {
		if strings.Contains(err.Error(), "idx_users_email") ||
			strings.Contains(err.Error(), "users.email") {
			return nil, wisherrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id string) (*model.User, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email,
	)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// UpdateUserProfile updates a user's display name and birth date.
func UpdateUserProfile(ctx context.Context, db *sql.DB, id, displayName string, birthDate *string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET display_name = ?, birth_date = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		displayName, birthDate, id,
	)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	return nil
}

// UpdateUserPassword updates a user's password hash.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}

// SetUserAvatar sets a user's avatar image data.
func SetUserAvatar(ctx context.Context, db *sql.DB, id string, avatar []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET avatar = ?, avatar_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		avatar, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting user avatar: %w", err)
	}
	return nil
}

// GetUserAvatar returns a user's avatar image data and MIME type.
func GetUserAvatar(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var avatar []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT avatar, avatar_mime FROM users WHERE id = ?`, id,
	).Scan(&avatar, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting user avatar: %w", err)
	}
	return avatar, mime.String, nil
}

// DeleteUser removes an account and everything tied to it in one transaction:
// the reservations the account made (releasing those items), the account's own
// items, and the reservations other accounts held against them.
func DeleteUser(ctx context.Context, db *sql.DB, id string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Release items this account has reserved, ledger rows first.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reservations WHERE reserver_id = ?`, id,
	); err != nil {
		return fmt.Errorf("deleting user reservations: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET is_reserved = 0, reserved_by = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE reserved_by = ?`, id,
	); err != nil {
		return fmt.Errorf("releasing reserved items: %w", err)
	}

	// Remove the account's own items and the reservations others held on
	// them. Done explicitly rather than through the FK cascade, which only
	// fires on connections with the foreign_keys pragma applied.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reservations
		 WHERE item_id IN (SELECT id FROM items WHERE owner_id = ?)`, id,
	); err != nil {
		return fmt.Errorf("deleting reservations on owned items: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM items WHERE owner_id = ?`, id,
	); err != nil {
		return fmt.Errorf("deleting owned items: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM users WHERE id = ?`, id,
	); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing user delete: %w", err)
	}
	return nil
}
