package store

import (
	"context"
	"testing"

	"github.com/mkeza/giftlist/internal/db"
	"github.com/mkeza/giftlist/internal/model"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner := testUser(t, database, "alice@example.com", "Alice")

	price := 199.99
	item, err := CreateItem(ctx, database, &model.Item{
		OwnerID:  owner.ID,
		Name:     "Bike",
		Price:    &price,
		Category: "sports",
		Priority: model.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Name != "Bike" {
		t.Errorf("expected name 'Bike', got %q", item.Name)
	}
	if item.IsReserved {
		t.Error("new item should not be reserved")
	}
	if item.ReservedBy != nil {
		t.Error("new item should have no reserver")
	}
	if item.Price == nil || *item.Price != 199.99 {
		t.Errorf("expected price 199.99, got %v", item.Price)
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.Priority != model.PriorityHigh {
		t.Errorf("expected priority 'high', got %q", got.Priority)
	}
}

func TestGetItemMissing(t *testing.T) {
	database := db.NewTestDB(t)

	item, err := GetItem(context.Background(), database, "no-such-id")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Error("expected nil for missing item")
	}
}

func TestListItemsByOwnerNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner := testUser(t, database, "alice@example.com", "Alice")
	other := testUser(t, database, "bob@example.com", "Bob")

	testItem(t, database, owner.ID, "First")
	testItem(t, database, owner.ID, "Second")
	testItem(t, database, other.ID, "Bob's item")

	items, err := ListItemsByOwner(ctx, database, owner.ID)
	if err != nil {
		t.Fatalf("ListItemsByOwner: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Second" || items[1].Name != "First" {
		t.Errorf("expected newest first, got %q then %q", items[0].Name, items[1].Name)
	}
}

func TestUpdateItemKeepsReservation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner := testUser(t, database, "alice@example.com", "Alice")
	reserver := testUser(t, database, "bob@example.com", "Bob")
	item := testItem(t, database, owner.ID, "Bike")

	if _, err := ReserveItem(ctx, database, item.ID, reserver.ID); err != nil {
		t.Fatalf("ReserveItem: %v", err)
	}

	item.Name = "Mountain Bike"
	item.Category = "sports"
	if err := UpdateItem(ctx, database, item); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Name != "Mountain Bike" {
		t.Errorf("expected updated name, got %q", got.Name)
	}
	if !got.IsReserved || got.ReservedBy == nil || *got.ReservedBy != reserver.ID {
		t.Error("update must not touch reservation state")
	}
}

func TestDeleteItemCascadesReservation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner := testUser(t, database, "alice@example.com", "Alice")
	reserver := testUser(t, database, "bob@example.com", "Bob")
	item := testItem(t, database, owner.ID, "Bike")

	if _, err := ReserveItem(ctx, database, item.ID, reserver.ID); err != nil {
		t.Fatalf("ReserveItem: %v", err)
	}

	if err := DeleteItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got != nil {
		t.Error("expected item to be gone")
	}

	reservations, _ := ListReservationsByReserver(ctx, database, reserver.ID)
	if len(reservations) != 0 {
		t.Errorf("expected 0 reservations after item delete, got %d", len(reservations))
	}
}

func TestSearchItemsCaseInsensitive(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner := testUser(t, database, "alice@example.com", "Alice")
	testItem(t, database, owner.ID, "Bike")
	CreateItem(ctx, database, &model.Item{OwnerID: owner.ID, Name: "Book", Description: "A mountain biking guide"})
	testItem(t, database, owner.ID, "Socks")

	results, err := SearchItems(ctx, database, owner.ID, "BIK")
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches (name and description), got %d", len(results))
	}

	none, _ := SearchItems(ctx, database, owner.ID, "laptop")
	if len(none) != 0 {
		t.Errorf("expected 0 matches, got %d", len(none))
	}
}

func TestSearchItemsScopedToOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	alice := testUser(t, database, "alice@example.com", "Alice")
	bob := testUser(t, database, "bob@example.com", "Bob")
	testItem(t, database, alice.ID, "Bike")
	testItem(t, database, bob.ID, "Bike")

	results, err := SearchItems(ctx, database, alice.ID, "bike")
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 match scoped to owner, got %d", len(results))
	}
}

func TestFilterItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner := testUser(t, database, "alice@example.com", "Alice")
	CreateItem(ctx, database, &model.Item{OwnerID: owner.ID, Name: "Bike", Category: "sports", Priority: model.PriorityHigh})
	CreateItem(ctx, database, &model.Item{OwnerID: owner.ID, Name: "Ball", Category: "sports", Priority: model.PriorityLow})
	CreateItem(ctx, database, &model.Item{OwnerID: owner.ID, Name: "Book", Category: "reading", Priority: model.PriorityHigh})

	byCategory, err := FilterItems(ctx, database, owner.ID, "sports", "")
	if err != nil {
		t.Fatalf("FilterItems: %v", err)
	}
	if len(byCategory) != 2 {
		t.Errorf("expected 2 sports items, got %d", len(byCategory))
	}

	byBoth, _ := FilterItems(ctx, database, owner.ID, "sports", model.PriorityHigh)
	if len(byBoth) != 1 || byBoth[0].Name != "Bike" {
		t.Errorf("expected only Bike for sports+high, got %v", byBoth)
	}

	all, _ := FilterItems(ctx, database, owner.ID, "", "")
	if len(all) != 3 {
		t.Errorf("expected 3 items with no filters, got %d", len(all))
	}
}
