package models

import "time"

// RefreshToken is one refresh session. Only the SHA-256 fingerprint of the
// raw token is stored; the raw value never touches the database. RevokedAt
// is monotonic: once set it is never cleared, which is what makes concurrent
// rotation and logout safe without locks.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	Expires   time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
