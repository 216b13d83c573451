package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mkeza/giftlist/internal/db"
	"github.com/mkeza/giftlist/internal/wisherrors"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	birthDate := "1990-05-14"
	user, err := CreateUser(ctx, database, "alice@example.com", "hash123", "Alice", &birthDate)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", user.Email)
	}
	if user.DisplayName != "Alice" {
		t.Errorf("expected display name 'Alice', got %q", user.DisplayName)
	}
	if user.BirthDate == nil || *user.BirthDate != "1990-05-14" {
		t.Errorf("expected birth date '1990-05-14', got %v", user.BirthDate)
	}

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.DisplayName != "Alice" {
		t.Errorf("expected display name 'Alice', got %q", got.DisplayName)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "alice@example.com", "hash", "Alice", nil); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := CreateUser(ctx, database, "alice@example.com", "hash", "Alice Again", nil)
	if !errors.Is(err, wisherrors.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	testUser(t, database, "alice@example.com", "Alice")

	user, err := GetUserByEmail(ctx, database, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}

	missing, err := GetUserByEmail(ctx, database, "bob@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing user")
	}
}

func TestUpdateUserProfile(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "alice@example.com", "Alice")

	birthDate := "1985-01-02"
	if err := UpdateUserProfile(ctx, database, user.ID, "Alice S.", &birthDate); err != nil {
		t.Fatalf("UpdateUserProfile: %v", err)
	}

	got, _ := GetUser(ctx, database, user.ID)
	if got.DisplayName != "Alice S." {
		t.Errorf("expected updated display name, got %q", got.DisplayName)
	}
	if got.BirthDate == nil || *got.BirthDate != "1985-01-02" {
		t.Errorf("expected updated birth date, got %v", got.BirthDate)
	}
}

func TestUpdateUserPassword(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "alice@example.com", "Alice")
	UpdateUserPassword(ctx, database, user.ID, "newhash")

	got, _ := GetUser(ctx, database, user.ID)
	if got.PasswordHash != "newhash" {
		t.Errorf("expected password hash 'newhash', got %q", got.PasswordHash)
	}
}

func TestUserAvatar(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "alice@example.com", "Alice")
	avatarData := []byte("fake image data")
	SetUserAvatar(ctx, database, user.ID, avatarData, "image/jpeg")

	data, mime, err := GetUserAvatar(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUserAvatar: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected avatar data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}
}

func TestDeleteUserReleasesReservations(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	alice := testUser(t, database, "alice@example.com", "Alice")
	bob := testUser(t, database, "bob@example.com", "Bob")
	item := testItem(t, database, alice.ID, "Bike")

	if _, err := ReserveItem(ctx, database, item.ID, bob.ID); err != nil {
		t.Fatalf("ReserveItem: %v", err)
	}

	// Deleting Bob must release Alice's item.
	if err := DeleteUser(ctx, database, bob.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got == nil {
		t.Fatal("Alice's item should survive Bob's deletion")
	}
	if got.IsReserved || got.ReservedBy != nil {
		t.Error("item should be released when the reserver is deleted")
	}
	if reservationCount(t, database, item.ID) != 0 {
		t.Error("expected ledger row to be deleted with the reserver")
	}
}

func TestDeleteUserCascadesItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	alice := testUser(t, database, "alice@example.com", "Alice")
	bob := testUser(t, database, "bob@example.com", "Bob")
	item := testItem(t, database, alice.ID, "Bike")

	if _, err := ReserveItem(ctx, database, item.ID, bob.ID); err != nil {
		t.Fatalf("ReserveItem: %v", err)
	}

	// Deleting Alice takes her items and Bob's reservation on them.
	if err := DeleteUser(ctx, database, alice.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got != nil {
		t.Error("expected item to be gone with its owner")
	}

	reservations, _ := ListReservationsByReserver(ctx, database, bob.ID)
	if len(reservations) != 0 {
		t.Errorf("expected Bob's reservation to be gone, got %d", len(reservations))
	}
}
