package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DayFormat is the calendar-day representation stored on a log row. Dates are
// compared by exact string equality, so both client and server sides must
// format to this layout in local time.
const DayFormat = "2006-01-02"

// Day formats t as a calendar day in its own location.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// Log records how many times an unhabit occurred on one calendar day.
// The (unhabit, day) pair is unique; same-day occurrences increment the
// existing row instead of inserting a second one.
type Log struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	UnhabitID uuid.UUID `json:"unhabitId" gorm:"type:uuid;not null;uniqueIndex:idx_logs_unhabit_day"`
	Date      string    `json:"date" gorm:"size:10;not null;uniqueIndex:idx_logs_unhabit_day"`
	Count     int       `json:"count" gorm:"not null;default:1"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (l *Log) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Log DTOs
type LogOccurrenceRequest struct {
	Date string  `json:"date"` // YYYY-MM-DD, defaults to today
	Note *string `json:"note"`
}

type UpdateLogRequest struct {
	Count int `json:"count" validate:"required,min=1"`
}
