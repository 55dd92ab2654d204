package models

import "time"

// EmailVerification is a single-use token that proves control of an email
// address. Consumed (deleted) on success, left in place when expired so the
// caller can distinguish "expired" from "never existed".
type EmailVerification struct {
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

// PasswordReset is a single-use token authorizing a credential change.
// Same lifecycle as EmailVerification, but with a much shorter expiry.
type PasswordReset struct {
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
