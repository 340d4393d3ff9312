// Package session holds the per-session mirror of the authoritative profile
// and the plumbing that resolves a session from an incoming request.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"giraffeql_web/internal/profile"
)

// CookieName is the cookie carrying the session token.
const CookieName = "authorization"

// TokenQueryParam is the query parameter accepted in place of the cookie.
const TokenQueryParam = "token"

// storageKey is the form a session token takes at rest. Stores never persist
// the token itself.
func storageKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Store keeps the shared user object for each session key.
// Keys are raw session tokens; implementations hash them with storageKey.
// Implementations must be safe for concurrent use; concurrent writers to the
// same key are last-writer-wins.
type Store interface {
	// Get returns the stored user, or nil when nothing is stored for key.
	Get(ctx context.Context, key string) (*profile.User, error)
	Put(ctx context.Context, key string, user *profile.User, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeleteExpired drops expired entries and returns how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
