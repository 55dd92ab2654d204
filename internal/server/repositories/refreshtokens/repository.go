package refreshtokens

import (
	"context"
	"time"

	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
)

// Repository is the refresh-session ledger. Tokens are identified by their
// fingerprint; raw token values never reach this layer's storage.
type Repository interface {
	Create(ctx context.Context, userID string, tokenHash string, validity time.Duration) error

	// FindActive returns the non-revoked session matching the identity and
	// fingerprint, or common.ErrorNotFound. Expiry is not checked here; the
	// caller decides how to report an expired-but-matching session.
	FindActive(ctx context.Context, userID string, tokenHash string) (*models.RefreshToken, error)

	// Revoke marks one session revoked, guarded on it not being revoked
	// already, and returns the number of rows affected. Zero means another
	// caller won the race for this session.
	Revoke(ctx context.Context, id string) (int64, error)

	// RevokeByHash revokes the active session matching identity and
	// fingerprint. Revoking a session that does not exist is not an error.
	RevokeByHash(ctx context.Context, userID string, tokenHash string) error

	// RevokeAllForUser revokes every active session of the identity.
	RevokeAllForUser(ctx context.Context, userID string) error
}
