package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mkeza/giftlist/internal/model"
)

// testUser creates an account for use in store tests.
func testUser(t *testing.T, db *sql.DB, email, name string) *model.User {
	t.Helper()
	u, err := CreateUser(context.Background(), db, email, "hash", name, nil)
	if err != nil {
		t.Fatalf("creating test user %s: %v", email, err)
	}
	return u
}

// testItem creates a wishlist item for use in store tests.
func testItem(t *testing.T, db *sql.DB, ownerID, name string) *model.Item {
	t.Helper()
	item, err := CreateItem(context.Background(), db, &model.Item{OwnerID: ownerID, Name: name})
	if err != nil {
		t.Fatalf("creating test item %s: %v", name, err)
	}
	return item
}
