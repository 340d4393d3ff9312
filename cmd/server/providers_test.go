package main

import (
	"path/filepath"
	"testing"
	"time"

	"giraffeql_web/internal/config"
	"giraffeql_web/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProvideSessionStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, err := provideSessionStore(&config.Config{SessionStore: config.SessionStoreMemory, SessionTTL: time.Hour}, nil)
		require.NoError(t, err)
		assert.IsType(t, &session.MemoryStore{}, store)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{
			SessionStore:    config.SessionStoreSQLite,
			SessionDBSource: filepath.Join(t.TempDir(), "sessions.db"),
			SessionTTL:      time.Hour,
			LogLevel:        "error",
		}
		db, cleanup, err := provideDatabase(cfg, zap.NewNop())
		require.NoError(t, err)
		defer cleanup()

		store, err := provideSessionStore(cfg, db)
		require.NoError(t, err)
		assert.IsType(t, &session.GormStore{}, store)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := provideSessionStore(&config.Config{SessionStore: "redis"}, nil)
		assert.Error(t, err)
	})
}

func TestInitializeServer_MemoryStore(t *testing.T) {
	cfg := &config.Config{
		GinMode:           "test",
		ServerHost:        "127.0.0.1",
		ServerPort:        "0",
		LogLevel:          "error",
		LogFormat:         "json",
		ProfileAPIBaseURL: "http://127.0.0.1:1",
		SessionStore:      config.SessionStoreMemory,
		SessionTTL:        time.Hour,
		DefaultAvatarURL:  "/tempuser.png",
	}
	server, cleanup, err := initializeServer(cfg)
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, server.Handler())
}
