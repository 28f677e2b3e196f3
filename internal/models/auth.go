package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session, Account and Verification mirror the identity-provider contract:
// credentials live on the account row, not the user row, and every issued
// token has a matching session row that can be revoked.

type Session struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	IPAddress *string   `json:"ipAddress"`
	UserAgent *string   `json:"userAgent"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Account struct {
	ID                   uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	AccountID            string     `json:"accountId" gorm:"not null"`
	ProviderID           string     `json:"providerId" gorm:"not null"` // credential, google
	UserID               uuid.UUID  `json:"userId" gorm:"type:uuid;index;not null"`
	User                 User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AccessToken          *string    `json:"-"`
	RefreshToken         *string    `json:"-"`
	IDToken              *string    `json:"-"`
	AccessTokenExpiresAt *time.Time `json:"-"`
	Scope                *string    `json:"scope"`
	Password             *string    `json:"-"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Verification struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Identifier string    `json:"identifier" gorm:"index;not null"`
	Value      string    `json:"value" gorm:"not null"`
	ExpiresAt  time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (v *Verification) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
