package session

import (
	"context"
	"fmt"
	"time"

	"giraffeql_web/internal/profile"

	"go.uber.org/zap"
)

// Context is the shared user object of one session, handed explicitly to the
// views that need it. Reads come from the snapshot loaded at construction;
// writes go through to the Store.
type Context struct {
	store  Store
	key    string
	ttl    time.Duration
	user   *profile.User
	logger *zap.Logger
}

// Load builds a Context for key. An empty key yields an anonymous context whose
// writes stay local.
func Load(ctx context.Context, store Store, key string, ttl time.Duration, logger *zap.Logger) (*Context, error) {
	c := &Context{store: store, key: key, ttl: ttl, user: &profile.User{}, logger: logger}
	if key == "" {
		return c, nil
	}
	u, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	if u != nil {
		c.user = u
	}
	return c, nil
}

// User returns the current shared user. It is never nil; an empty user means logged out.
func (c *Context) User() *profile.User {
	return c.user
}

// StoreUser replaces the shared user. A nil user is stored as empty.
func (c *Context) StoreUser(ctx context.Context, u *profile.User) error {
	if u == nil {
		u = &profile.User{}
	}
	c.user = u.Clone()
	if c.key == "" {
		return nil
	}
	if err := c.store.Put(ctx, c.key, c.user, c.ttl); err != nil {
		return fmt.Errorf("store session user: %w", err)
	}
	return nil
}

// Logout clears the shared user and forgets the session mirror.
func (c *Context) Logout(ctx context.Context) error {
	c.user = &profile.User{}
	if c.key == "" {
		return nil
	}
	if err := c.store.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	c.logger.Debug("Session mirror cleared")
	return nil
}
