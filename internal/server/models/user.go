package models

import "time"

// User is the stored account record. Email is unique (case-sensitive) and
// enforced by the schema. PasswordHash never leaves the server: it is
// excluded from every JSON serialization.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
}
