package store

import (
	"context"
	"errors"
	"testing"

	"restaurant-backend/models"
)

func newTestItem() MenuItemInput {
	return MenuItemInput{
		Name:        "Tarta de Limón",
		Description: "Con merengue italiano",
		Category:    models.CategoryDesserts,
		Price:       1400,
		Available:   true,
	}
}

func TestMemory_MenuLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	created, err := m.CreateMenuItem(ctx, newTestItem())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Fatalf("create did not assign identity/timestamp: %#v", created)
	}
	if created.Price != 1400 {
		t.Errorf("price = %d, want 1400", created.Price)
	}

	got, err := m.GetMenuItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != created {
		t.Errorf("get = %#v, want %#v", got, created)
	}

	newName := "Tarta de Queso"
	newPrice := int64(1500)
	updated, err := m.UpdateMenuItem(ctx, created.ID, MenuItemPatch{Name: &newName, Price: &newPrice})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != newName || updated.Price != newPrice {
		t.Errorf("update not applied: %#v", updated)
	}
	// Untouched fields keep their values; identity and timestamp are immutable.
	if updated.Description != created.Description || updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("update touched immutable fields: %#v", updated)
	}

	deleted, err := m.DeleteMenuItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != created.ID {
		t.Errorf("delete returned wrong item: %#v", deleted)
	}

	if _, err := m.GetMenuItem(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
	if _, err := m.DeleteMenuItem(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
	if _, err := m.UpdateMenuItem(ctx, 9999, MenuItemPatch{Name: &newName}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update unknown id = %v, want ErrNotFound", err)
	}
}

func TestMemory_ListByCategoryIsExact(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	dessert := newTestItem()
	if _, err := m.CreateMenuItem(ctx, dessert); err != nil {
		t.Fatal(err)
	}
	main := newTestItem()
	main.Name = "Beef Wellington"
	main.Category = models.CategoryMains
	if _, err := m.CreateMenuItem(ctx, main); err != nil {
		t.Fatal(err)
	}
	// Different case is a different category; must be excluded.
	odd := newTestItem()
	odd.Category = "Desserts"
	if _, err := m.CreateMenuItem(ctx, odd); err != nil {
		t.Fatal(err)
	}

	items, err := m.ListMenuItemsByCategory(ctx, "desserts")
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Category != "desserts" {
		t.Errorf("category = %q, want desserts", items[0].Category)
	}

	all, err := m.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d items, want 3", len(all))
	}
}

func TestMemory_ReservationStatusForcedToPending(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	r, err := m.CreateReservation(ctx, ReservationInput{
		Name: "Ana", Email: "ana@example.com", Phone: "+34600000000",
		Date: "2024-12-01", Time: "20:00", Guests: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.Status != models.ReservationPending {
		t.Errorf("status = %q, want pending", r.Status)
	}
	if r.ID == 0 || r.CreatedAt.IsZero() {
		t.Errorf("create did not assign identity/timestamp: %#v", r)
	}
}

func TestMemory_GetReservation(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	created, err := m.CreateReservation(ctx, ReservationInput{
		Name: "Ana", Email: "ana@example.com", Phone: "+34600000000",
		Date: "2024-12-01", Time: "20:00", Guests: 2, Comments: "window table",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := m.GetReservation(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ana" || got.Comments != "window table" || got.Status != models.ReservationPending {
		t.Errorf("got = %#v", got)
	}

	if _, err := m.GetReservation(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
}

func TestMemory_SetReservationStatus(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	r, err := m.CreateReservation(ctx, ReservationInput{
		Name: "Ana", Email: "ana@example.com", Phone: "+34600000000",
		Date: "2024-12-01", Time: "20:00", Guests: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	confirmed, err := m.SetReservationStatus(ctx, r.ID, models.ReservationConfirmed)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != models.ReservationConfirmed {
		t.Errorf("status = %q, want confirmed", confirmed.Status)
	}

	// Both directions are allowed: confirmed -> cancelled and back.
	cancelled, err := m.SetReservationStatus(ctx, r.ID, models.ReservationCancelled)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.ReservationCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}
	if _, err := m.SetReservationStatus(ctx, r.ID, models.ReservationConfirmed); err != nil {
		t.Fatalf("re-confirm: %v", err)
	}

	if _, err := m.SetReservationStatus(ctx, r.ID, "approved"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("bad status error = %v, want ErrInvalidStatus", err)
	}
	if _, err := m.SetReservationStatus(ctx, 9999, models.ReservationConfirmed); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
}

func TestMemory_Contacts(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	c, err := m.CreateContact(ctx, ContactInput{
		Name: "Ana", Email: "ana@example.com", Subject: "Hola", Message: "Buenas tardes",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == 0 || c.CreatedAt.IsZero() {
		t.Errorf("create did not assign identity/timestamp: %#v", c)
	}

	cs, err := m.ListContacts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cs) != 1 || cs[0].Subject != "Hola" {
		t.Errorf("list = %#v", cs)
	}
}

func TestMemory_Admins(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.GetAdminByUsername(ctx, "admin"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("lookup on empty store = %v, want ErrNotFound", err)
	}
	u, err := m.CreateAdmin(ctx, "admin", "$2a$10$hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := m.GetAdminByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.ID != u.ID || got.PasswordHash != "$2a$10$hash" {
		t.Errorf("lookup = %#v", got)
	}
}

func TestMemory_SeedSampleMenuIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.SeedSampleMenu(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	first, _ := m.ListMenuItems(ctx)
	if len(first) == 0 {
		t.Fatal("seed loaded no items")
	}
	if err := m.SeedSampleMenu(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	second, _ := m.ListMenuItems(ctx)
	if len(second) != len(first) {
		t.Errorf("second seed changed item count: %d -> %d", len(first), len(second))
	}
}

func TestMemory_IDsAreMonotonic(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	a, _ := m.CreateMenuItem(ctx, newTestItem())
	if _, err := m.DeleteMenuItem(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	b, _ := m.CreateMenuItem(ctx, newTestItem())
	if b.ID <= a.ID {
		t.Errorf("ids not monotonic: %d then %d", a.ID, b.ID)
	}
}
