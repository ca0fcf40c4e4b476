package storage

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teammatch/internal/models"
)

// SearchHistoryRepository is the append-only search log.
type SearchHistoryRepository interface {
	// Record appends term for userID with the current time.
	Record(ctx context.Context, userID uint, term string) error
	// RecentTerms returns up to limit terms, most recent first.
	RecentTerms(ctx context.Context, userID uint, limit int) ([]string, error)
}

type gormSearchHistoryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormSearchHistoryRepository creates a SearchHistoryRepository backed by the
// search_histories table.
func NewGormSearchHistoryRepository(db *gorm.DB) SearchHistoryRepository {
	return &gormSearchHistoryRepository{db: db, now: time.Now}
}

func (r *gormSearchHistoryRepository) Record(ctx context.Context, userID uint, term string) error {
	entry := models.SearchHistory{
		UserID:     userID,
		SearchTerm: term,
		Timestamp:  r.now().UTC(),
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *gormSearchHistoryRepository) RecentTerms(ctx context.Context, userID uint, limit int) ([]string, error) {
	terms := []string{}
	if limit <= 0 {
		return terms, nil
	}
	// id breaks ties between entries written within the same clock tick.
	err := r.db.WithContext(ctx).
		Model(&models.SearchHistory{}).
		Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Limit(limit).
		Pluck("search_term", &terms).Error
	if err != nil {
		return nil, err
	}
	return terms, nil
}
