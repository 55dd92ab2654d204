// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account roles. Role is constrained to exactly these two values by the
// schema and by input validation.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account row. Email is stored lowercased; uniqueness is
// enforced by the database as the final authority. EmailVerifiedAt is nil
// until the account verifies its address.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	FullName        string
	AvatarURL       *string
	Role            string
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
}
