package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"giraffeql_web/internal/profile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the persisted form of a session mirror. Key is the sha256 of the
// session token in hex.
type Record struct {
	Key       string    `gorm:"column:session_key;primaryKey;type:varchar(64)"`
	UserJSON  string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for Record.
func (Record) TableName() string {
	return "sessions"
}

// GormStore is a Store persisted through GORM (sqlite or postgres).
type GormStore struct {
	db         *gorm.DB
	defaultTTL time.Duration
	now        func() time.Time
}

// NewGormStore migrates the sessions table and returns a store over db.
func NewGormStore(db *gorm.DB, defaultTTL time.Duration) (*GormStore, error) {
	if db == nil {
		return nil, errors.New("gorm store requires a database")
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate sessions table: %w", err)
	}
	return &GormStore{db: db, defaultTTL: defaultTTL, now: time.Now}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) (*profile.User, error) {
	var rec Record
	err := s.db.WithContext(ctx).
		Where("session_key = ? AND expires_at > ?", storageKey(key), s.now()).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var u profile.User
	if err := json.Unmarshal([]byte(rec.UserJSON), &u); err != nil {
		return nil, fmt.Errorf("decode session user: %w", err)
	}
	return &u, nil
}

func (s *GormStore) Put(ctx context.Context, key string, user *profile.User, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if user == nil {
		user = &profile.User{}
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	rec := Record{Key: storageKey(key), UserJSON: string(raw), ExpiresAt: s.now().Add(ttl)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_json", "expires_at", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("session_key = ?", storageKey(key)).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&Record{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
