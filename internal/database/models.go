package database

import (
	"time"

	"gorm.io/gorm"
)

// PlaybackHistory is one successful play
type PlaybackHistory struct {
	ID              uint      `gorm:"primaryKey"`
	Kind            string    `gorm:"not null;index"` // standalone or subitem
	ItemID          string    `gorm:"not null;index"`
	Title           string    `gorm:"not null"`
	CollectionID    string    `gorm:"default:'';index"`
	CollectionTitle string    `gorm:"default:''"`
	Season          int       `gorm:"default:0"`
	Episode         int       `gorm:"default:0"`
	Source          string    `gorm:"default:''"`
	Provider        string    `gorm:"default:''"`
	PlayedAt        time.Time `gorm:"index;default:CURRENT_TIMESTAMP"`
}

// TableName overrides the table name
func (PlaybackHistory) TableName() string {
	return "playback_history"
}

// Setting represents a key-value store for application settings
type Setting struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

// TableName overrides the table name
func (Setting) TableName() string {
	return "settings"
}

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&PlaybackHistory{},
		&Setting{},
	)
}
