package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MirrorTTL returns how long the mirror for token may live. Tokens are opaque
// to this service, but when one happens to be a JWT its exp claim caps the TTL.
// The signature is not verified; the value only bounds a cache lifetime.
func MirrorTTL(token string, fallback time.Duration, now time.Time) time.Duration {
	if token == "" {
		return fallback
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return fallback
	}
	if claims.ExpiresAt == nil {
		return fallback
	}
	ttl := claims.ExpiresAt.Time.Sub(now)
	if ttl <= 0 {
		// Already expired: keep the mirror just long enough to serve this request.
		return time.Second
	}
	if ttl < fallback {
		return ttl
	}
	return fallback
}
