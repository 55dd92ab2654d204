package models

import "time"

// Testimonial is a user review. UserName and AvatarURL are denormalized at
// creation time; AvatarURL is refreshed when the owner changes their avatar.
// IsOwner is computed per request for the viewing user and never persisted.
type Testimonial struct {
	ID        string
	UserID    string
	UserName  string
	AvatarURL *string
	Rating    int
	Message   string
	CreatedAt time.Time
	IsOwner   bool
}
