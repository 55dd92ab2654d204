package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the hex SHA-256 fingerprint of a raw opaque token.
// Refresh tokens are persisted only in this form, so a database compromise
// does not yield presentable tokens.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
