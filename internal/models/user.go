package models

import (
	"time"
)

// User represents a row in the users table. Roles are stored as a text array
// and validated against the allowed set before they ever reach this layer.
type User struct {
	UserID       string   `db:"user_id"`
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	FullName     string   `db:"full_name"`
	Roles        []string `db:"roles"`
	PasswordHash string   `db:"password_hash"`
	Disabled     bool     `db:"disabled"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
