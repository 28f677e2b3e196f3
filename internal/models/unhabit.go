package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Frequency values for an unhabit.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

var ValidFrequencies = map[string]bool{
	FrequencyDaily:   true,
	FrequencyWeekly:  true,
	FrequencyMonthly: true,
}

// Form-level limits, enforced at the API boundary rather than by the store.
const (
	NameMinLen        = 3
	NameMaxLen        = 50
	DescriptionMaxLen = 500
	TargetMax         = 1000
)

// Unhabit is a behavior the user wants to reduce. Archived partitions the
// set into two disjoint views; rows are never hard-deleted through the API.
type Unhabit struct {
	ID                  uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Name                string    `json:"name" gorm:"not null"`
	Description         *string   `json:"description"`
	Goal                *string   `json:"goal"`
	Frequency           string    `json:"frequency" gorm:"not null;default:'daily'"` // daily, weekly, monthly
	Target              int       `json:"target" gorm:"default:0"`                   // max acceptable daily count
	Archived            bool      `json:"archived" gorm:"not null;default:false"`
	NotificationEnabled bool      `json:"notificationEnabled" gorm:"not null;default:false"`
	NotificationTime    *string   `json:"notificationTime"` // HH:MM, local time
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	Logs                []Log     `json:"logs,omitempty" gorm:"foreignKey:UnhabitID;constraint:OnDelete:CASCADE"`
}

func (u *Unhabit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Unhabit DTOs
type CreateUnhabitRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Goal        *string `json:"goal"`
	Frequency   string  `json:"frequency"`
	Target      int     `json:"target"`
}

type UpdateUnhabitRequest struct {
	Name                *string `json:"name"`
	Description         *string `json:"description"`
	Goal                *string `json:"goal"`
	Frequency           *string `json:"frequency"`
	Target              *int    `json:"target"`
	NotificationEnabled *bool   `json:"notificationEnabled"`
	NotificationTime    *string `json:"notificationTime"`
}
