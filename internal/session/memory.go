package session

import (
	"context"
	"time"

	"giraffeql_web/internal/profile"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process Store backed by go-cache.
type MemoryStore struct {
	cache *cache.Cache
}

// MemoryStoreConfig holds the configuration for MemoryStore.
type MemoryStoreConfig struct {
	DefaultExpiration time.Duration
	CleanupInterval   time.Duration
}

// NewMemoryStore creates a MemoryStore. Expired items are purged every CleanupInterval.
func NewMemoryStore(cfg MemoryStoreConfig) *MemoryStore {
	return &MemoryStore{cache: cache.New(cfg.DefaultExpiration, cfg.CleanupInterval)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*profile.User, error) {
	v, found := s.cache.Get(storageKey(key))
	if !found {
		return nil, nil
	}
	u, _ := v.(*profile.User)
	return u.Clone(), nil
}

func (s *MemoryStore) Put(_ context.Context, key string, user *profile.User, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	s.cache.Set(storageKey(key), user.Clone(), ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(storageKey(key))
	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	before := s.cache.ItemCount()
	s.cache.DeleteExpired()
	removed := before - s.cache.ItemCount()
	if removed < 0 {
		removed = 0
	}
	return int64(removed), nil
}
