package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// The items table carries the reservation flag; the reservations table is the
// ledger. Two constraints back the consistency model: the CHECK on items ties
// the flag to the reserving account, and UNIQUE(item_id) on reservations
// allows at most one ledger row per item.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    display_name  TEXT NOT NULL,
    birth_date    TEXT,
    avatar        BLOB,
    avatar_mime   TEXT,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);

CREATE TABLE IF NOT EXISTS items (
    id          TEXT PRIMARY KEY,
    owner_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name        TEXT NOT NULL,
    description TEXT,
    price       REAL CHECK (price IS NULL OR price >= 0),
    category    TEXT,
    priority    TEXT CHECK (priority IS NULL OR priority IN ('low', 'medium', 'high')),
    store_url   TEXT,
    image_url   TEXT,
    is_reserved INTEGER NOT NULL DEFAULT 0,
    reserved_by TEXT REFERENCES users(id),
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK ((is_reserved = 0) = (reserved_by IS NULL))
);

CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner_id);

CREATE TABLE IF NOT EXISTS reservations (
    id          TEXT PRIMARY KEY,
    item_id     TEXT NOT NULL UNIQUE REFERENCES items(id) ON DELETE CASCADE,
    reserver_id TEXT NOT NULL REFERENCES users(id),
    reserved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reservations_reserver ON reservations(reserver_id);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
