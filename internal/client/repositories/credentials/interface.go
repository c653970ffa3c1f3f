// Package credentials persists the token pair across process restarts.
// The backing store is a local SQLite key/value table; the well-known keys
// mirror the web client's storage keys.
package credentials

import (
	"context"

	"github.com/learnpath/lmscli/internal/client/models"
)

const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// Store is the durable credential pair storage.
//
// Besides explicit login/logout, the token refresh scheduler is the only
// mutator during a session's lifetime.
type Store interface {
	// Pair returns the stored tokens. Missing keys yield empty strings,
	// not an error.
	Pair(ctx context.Context) (models.TokenPair, error)

	// Save replaces both tokens atomically.
	Save(ctx context.Context, pair models.TokenPair) error

	// Clear removes both tokens.
	Clear(ctx context.Context) error

	// AccessToken returns just the access token, for request signing.
	AccessToken(ctx context.Context) (string, error)
}
