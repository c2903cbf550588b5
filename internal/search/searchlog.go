package search

import (
	"time"

	"github.com/SchoolScout/SS-Backend/internal/db"
	"github.com/SchoolScout/SS-Backend/internal/directory"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SearchLog records one remote directory query served over HTTP. Best-effort
// analytics: a failed insert is logged, never surfaced.
type SearchLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ProfileID   string         `gorm:"index" json:"profile_id"`
	Source      string         `json:"source"` // districts | schools
	Term        string         `json:"term"`
	Filters     pq.StringArray `gorm:"type:text[]" json:"filters"`
	ResultCount int            `json:"result_count"`
	DurationMs  int64          `json:"duration_ms"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (SearchLog) TableName() string {
	return "directory.search_logs"
}

func recordSearchLog(profileID, source, term string, filters []string, count int, duration time.Duration) {
	if db.DB == nil {
		return
	}
	entry := SearchLog{
		ProfileID:   profileID,
		Source:      source,
		Term:        term,
		Filters:     filters,
		ResultCount: count,
		DurationMs:  duration.Milliseconds(),
	}
	if err := db.DB.Create(&entry).Error; err != nil {
		directory.LogError("searchlog", "insert", err)
	}
}
