// File: internal/platform/database/gorm.go
package database

import (
	"fmt"
	"time"

	"giraffeql_web/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewGORM opens the database that backs the session mirror.
// It returns a nil *gorm.DB when the in-memory session store is configured.
func NewGORM(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.SessionStore {
	case config.SessionStoreMemory:
		logger.Info("Session store is in-memory, no database opened")
		return nil, nil
	case config.SessionStoreSQLite:
		dialector = sqlite.Open(cfg.SessionDBSource)
	case config.SessionStorePostgres:
		dialector = postgres.Open(cfg.SessionDBSource)
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.SessionStore)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.SessionStore == config.SessionStoreSQLite {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY under load.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}

	logger.Info("Connected to session database", zap.String("driver", cfg.SessionStore))
	return db, nil
}

// Close closes the GORM database connection. A nil db is ignored.
func Close(db *gorm.DB, logger *zap.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting underlying SQL DB for closing", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing session database", zap.Error(err))
		return
	}
	logger.Info("Session database closed")
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent", "fatal", "panic":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
