package models

import "time"

// AdminUser can log in to the admin panel. Only the bcrypt hash is
// stored; the hash never appears in JSON responses.
type AdminUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
