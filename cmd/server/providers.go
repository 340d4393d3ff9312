// File: cmd/server/providers.go
package main

import (
	"fmt"
	"log"

	"giraffeql_web/internal/config"
	"giraffeql_web/internal/entry"
	"giraffeql_web/internal/platform/database"
	"giraffeql_web/internal/platform/logger"
	"giraffeql_web/internal/profile"
	"giraffeql_web/internal/session"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	l, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return l, func() {
		if err := l.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
	}, nil
}

// provideDatabase opens the session database. It yields a nil *gorm.DB for the memory store.
func provideDatabase(cfg *config.Config, l *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg, l)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { database.Close(db, l) }, nil
}

func provideSessionStore(cfg *config.Config, db *gorm.DB) (session.Store, error) {
	switch cfg.SessionStore {
	case config.SessionStoreMemory:
		return session.NewMemoryStore(session.MemoryStoreConfig{
			DefaultExpiration: cfg.SessionTTL,
			CleanupInterval:   cfg.SessionTTL / 2,
		}), nil
	case config.SessionStoreSQLite, config.SessionStorePostgres:
		return session.NewGormStore(db, cfg.SessionTTL)
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}

func provideProfileClient(cfg *config.Config, l *zap.Logger) *profile.HTTPClient {
	return profile.NewHTTPClient(cfg.ProfileAPIBaseURL, cfg.ProfileAPITimeout, l)
}

func provideChecker(cfg *config.Config, l *zap.Logger) *entry.PostgresChecker {
	return entry.NewPostgresChecker(cfg.ConnectTimeout, l)
}
