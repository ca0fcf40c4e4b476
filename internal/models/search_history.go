package models

import "time"

// SearchHistory is one append-only search log entry.
type SearchHistory struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_search_history_user_time" json:"userId"`
	SearchTerm string    `gorm:"type:varchar(100);not null" json:"searchTerm"`
	Timestamp  time.Time `gorm:"not null;index:idx_search_history_user_time" json:"timestamp"`
}

// TableName overrides the table name used by SearchHistory.
func (SearchHistory) TableName() string {
	return "search_histories"
}
