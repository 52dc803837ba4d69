// Package store persists menu items, reservations, contact messages
// and admin users. Two implementations exist: Memory (tests, local
// development) and Postgres. Each collection is an independent
// aggregate; there are no cross-entity references.
package store

import (
	"context"
	"errors"

	"restaurant-backend/models"
)

// ErrNotFound is the sentinel "absent" result: the referenced id does
// not exist. It is returned, never panicked, so callers can map it to
// a 404 without treating it as a fault.
var ErrNotFound = errors.New("not found")

// ErrInvalidStatus is returned by SetReservationStatus when the new
// status is outside {pending, confirmed, cancelled}.
var ErrInvalidStatus = errors.New("invalid reservation status")

// MenuItemInput carries a validated new menu item. Price is in cents.
type MenuItemInput struct {
	Name        string
	Description string
	Category    string
	Price       int64
	Image       string
	Available   bool
}

// MenuItemPatch updates only the non-nil fields. ID and CreatedAt are
// immutable and deliberately not representable here.
type MenuItemPatch struct {
	Name        *string
	Description *string
	Category    *string
	Price       *int64
	Image       *string
	Available   *bool
}

// ReservationInput carries a validated reservation submission. Status
// is not part of the input: every reservation starts as pending.
type ReservationInput struct {
	Name     string
	Email    string
	Phone    string
	Date     string
	Time     string
	Guests   int
	Comments string
}

// ContactInput carries a validated contact-form submission.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// MenuStore persists the menu catalog.
type MenuStore interface {
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	// ListMenuItemsByCategory matches the category exactly
	// (case-sensitive). "all" handling belongs to the caller.
	ListMenuItemsByCategory(ctx context.Context, category string) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (models.MenuItem, error)
	CreateMenuItem(ctx context.Context, in MenuItemInput) (models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id int64, patch MenuItemPatch) (models.MenuItem, error)
	// DeleteMenuItem hard-deletes and returns the removed item, or
	// ErrNotFound.
	DeleteMenuItem(ctx context.Context, id int64) (models.MenuItem, error)
}

// ReservationStore persists reservations. There is no delete:
// reservations only change status.
type ReservationStore interface {
	ListReservations(ctx context.Context) ([]models.Reservation, error)
	GetReservation(ctx context.Context, id int64) (models.Reservation, error)
	CreateReservation(ctx context.Context, in ReservationInput) (models.Reservation, error)
	// SetReservationStatus moves a reservation to any of the three
	// states. Idempotent when the status is unchanged.
	SetReservationStatus(ctx context.Context, id int64, status string) (models.Reservation, error)
}

// ContactStore persists contact messages, append-only.
type ContactStore interface {
	ListContacts(ctx context.Context) ([]models.Contact, error)
	CreateContact(ctx context.Context, in ContactInput) (models.Contact, error)
}

// AdminStore persists admin panel users.
type AdminStore interface {
	GetAdminByUsername(ctx context.Context, username string) (models.AdminUser, error)
	CreateAdmin(ctx context.Context, username, passwordHash string) (models.AdminUser, error)
}

// Store bundles every collection behind one value for wiring.
type Store interface {
	MenuStore
	ReservationStore
	ContactStore
	AdminStore
}
