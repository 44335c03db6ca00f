package history

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/justchokingaround/reel/internal/catalog"
	"github.com/justchokingaround/reel/internal/database"
	"github.com/justchokingaround/reel/internal/player"
)

// Service records and lists plays
type Service struct {
	db       *gorm.DB
	provider string
	now      func() time.Time
}

// SortOrder defines the sorting order for history items
type SortOrder string

const (
	SortRecentFirst SortOrder = "recent_first"
	SortOldestFirst SortOrder = "oldest_first"
	SortTitleAsc    SortOrder = "title_asc"
)

// FilterOptions narrows List
type FilterOptions struct {
	Kind         string // standalone, subitem or empty for all
	CollectionID string
	SearchQuery  string // Search in title and collection title
	Since        time.Time
	Limit        int // 0 = no limit
	SortBy       SortOrder
}

// NewService creates a history service. provider is stored with each row.
func NewService(db *gorm.DB, provider string) *Service {
	return &Service{db: db, provider: provider, now: time.Now}
}

// Record stores a started playback
func (s *Service) Record(np player.NowPlaying) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	row := database.PlaybackHistory{
		Kind:     np.Kind.String(),
		ItemID:   np.Item.ID(),
		Title:    np.Item.Title(),
		Source:   np.Source,
		Provider: s.provider,
		PlayedAt: s.now(),
	}
	if np.Kind == catalog.KindSubItem && np.Item.SubItem != nil {
		row.Season = np.Item.SubItem.Season
		row.Episode = np.Item.SubItem.Episode
	}
	if np.Collection != nil {
		row.CollectionID = np.Collection.ID
		row.CollectionTitle = np.Collection.Title
	}

	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record playback: %w", err)
	}
	return nil
}

// List returns plays matching filter
func (s *Service) List(filter FilterOptions) ([]database.PlaybackHistory, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := s.db.Model(&database.PlaybackHistory{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.CollectionID != "" {
		query = query.Where("collection_id = ?", filter.CollectionID)
	}
	if filter.SearchQuery != "" {
		like := "%" + filter.SearchQuery + "%"
		query = query.Where("title LIKE ? OR collection_title LIKE ?", like, like)
	}
	if !filter.Since.IsZero() {
		query = query.Where("played_at >= ?", filter.Since)
	}

	switch filter.SortBy {
	case SortOldestFirst:
		query = query.Order("played_at ASC").Order("id ASC")
	case SortTitleAsc:
		query = query.Order("title ASC")
	default:
		query = query.Order("played_at DESC").Order("id DESC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []database.PlaybackHistory
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return rows, nil
}

// Recent returns the latest limit plays, newest first
func (s *Service) Recent(limit int) ([]database.PlaybackHistory, error) {
	return s.List(FilterOptions{Limit: limit})
}

// Last returns the most recent play, nil when there is none
func (s *Service) Last() (*database.PlaybackHistory, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	var row database.PlaybackHistory
	err := s.db.Order("played_at DESC").Order("id DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last play: %w", err)
	}
	return &row, nil
}

// Count returns the number of recorded plays
func (s *Service) Count() (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	var n int64
	if err := s.db.Model(&database.PlaybackHistory{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Cleanup deletes plays older than the given age
func (s *Service) Cleanup(olderThan time.Duration) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	res := s.db.Where("played_at < ?", s.now().Add(-olderThan)).Delete(&database.PlaybackHistory{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clean up history: %w", res.Error)
	}
	return res.RowsAffected, nil
}
