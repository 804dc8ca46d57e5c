package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotBundle = errors.New("script is not a bundle")

// Script is one generated content artifact. Content is a JSON document whose
// shape depends on the platform (hook+sections, caption+hashtags+scenes,
// body+keyPoints+cta, or a tweets array). A multi-day plan is stored as a
// single Script row whose content is a BundleContent wrapper.
type Script struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string         `gorm:"not null;size:500" json:"title"`
	Platform      string         `gorm:"size:50" json:"platform"`
	Tone          string         `gorm:"size:50" json:"tone"`
	Language      string         `gorm:"size:50" json:"language"`
	Length        string         `gorm:"size:50" json:"length"`
	CustomLength  string         `gorm:"size:50" json:"custom_length"`
	Content       datatypes.JSON `gorm:"type:jsonb" json:"content"`
	ScheduledDate *time.Time     `gorm:"type:date" json:"scheduled_date"`
	Starred       bool           `gorm:"default:false" json:"starred"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	User          User           `gorm:"foreignKey:UserID" json:"-"`
}

func (s *Script) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BundleScript is one day of a persisted multi-day plan.
type BundleScript struct {
	Day     int             `json:"day"`
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

// BundleContent wraps an ordered list of per-day scripts in a single row.
// Invariant: 0 <= CompletedThrough <= len(Scripts).
type BundleContent struct {
	IsBundle         bool           `json:"isBundle"`
	Scripts          []BundleScript `json:"scripts"`
	CompletedThrough int            `json:"completedThrough"`
}

// Bundle parses the content payload as a BundleContent. Returns ErrNotBundle
// for plain scripts.
func (s *Script) Bundle() (*BundleContent, error) {
	var b BundleContent
	if err := json.Unmarshal(s.Content, &b); err != nil {
		return nil, ErrNotBundle
	}
	if !b.IsBundle {
		return nil, ErrNotBundle
	}
	if b.CompletedThrough < 0 {
		b.CompletedThrough = 0
	}
	if b.CompletedThrough > len(b.Scripts) {
		b.CompletedThrough = len(b.Scripts)
	}
	return &b, nil
}

// SetBundle serializes the bundle back into the content column.
func (s *Script) SetBundle(b *BundleContent) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	s.Content = datatypes.JSON(raw)
	return nil
}
