package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SettingsStore reads and writes the settings table
type SettingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the value under key; ok is false when it was never set
func (s *SettingsStore) Get(key string) (value string, ok bool, err error) {
	if s.db == nil {
		return "", false, fmt.Errorf("database connection is nil")
	}
	var setting Setting
	err = s.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	return setting.Value, true, nil
}

// Set upserts key
func (s *SettingsStore) Set(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return s.db.Exec(`
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now()).Error
}

// Delete removes key if present
func (s *SettingsStore) Delete(key string) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return s.db.Where("key = ?", key).Delete(&Setting{}).Error
}
