package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feruzlabs/laravel-taskMaster/internal/model"
)

// PageStore manages daily pages, the per-date buckets that own tasks.
type PageStore struct {
	db *gorm.DB
}

func NewPageStore(db *gorm.DB) *PageStore {
	return &PageStore{db: db}
}

// GetOrCreate returns the page for date (YYYY-MM-DD), creating it on first
// reference. The insert tolerates a concurrent creator via the unique index
// on date: ON CONFLICT DO NOTHING followed by a re-read, so both racers end
// up with the same row.
func (s *PageStore) GetOrCreate(ctx context.Context, date string) (*model.DailyPage, error) {
	db := s.db.WithContext(ctx)

	var page model.DailyPage
	err := db.Where("date = ?", date).First(&page).Error
	if err == nil {
		return &page, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("find page: %w", err)
	}

	page = model.DailyPage{Date: date}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).Create(&page)
	if res.Error != nil {
		return nil, fmt.Errorf("create page: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return &page, nil
	}

	// Lost the race; the other caller's row wins.
	if err := db.Where("date = ?", date).First(&page).Error; err != nil {
		return nil, fmt.Errorf("find page after conflict: %w", err)
	}
	return &page, nil
}
