package models

import "time"

// Reservation is a table booking request submitted from the public site.
// Status is never set by the submitter: it starts at "pending" and only
// an admin action moves it.
type Reservation struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Guests    int       `json:"guests"`
	Comments  string    `json:"comments,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// ValidReservationStatus reports whether s is one of the three
// reservation states. Any state may be reassigned to any other by an
// admin; there is no transition graph beyond the closed set.
func ValidReservationStatus(s string) bool {
	return s == ReservationPending || s == ReservationConfirmed || s == ReservationCancelled
}
