package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User doubles as the profile record: created on first sign-up,
// kept in sync by the profile-sync endpoint, never deleted by the app.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	IsPremium    bool           `gorm:"default:false" json:"is_premium"`
	UsageCount   int            `gorm:"default:0" json:"usage_count"`
	LastUsageDay time.Time      `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
