package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/scriptgo/backend/internal/config"
	"github.com/scriptgo/backend/internal/dto"
	"github.com/scriptgo/backend/internal/models"
	"gorm.io/gorm"
)

var ErrUsageLimit = errors.New("daily free generation limit reached, upgrade to premium for unlimited scripts")

// ProfileService exposes the profile view of the User row and enforces the
// daily generation allowance for non-premium accounts.
type ProfileService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewProfileService(db *gorm.DB, cfg *config.Config) *ProfileService {
	return &ProfileService{db: db, cfg: cfg}
}

func (s *ProfileService) GetProfile(userID uuid.UUID) (*dto.ProfileResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	return &dto.ProfileResponse{
		ID:         user.ID,
		Email:      user.Email,
		IsPremium:  user.IsPremium,
		UsageCount: user.UsageCount,
	}, nil
}

// SyncProfile makes sure a profile row exists for the authenticated identity.
// Registration already creates the row, so this is an idempotent backstop for
// accounts provisioned out of band.
func (s *ProfileService) SyncProfile(userID uuid.UUID, email string) (*dto.ProfileResponse, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", userID).Error
	if err != nil {
		user = models.User{
			ID:    userID,
			Email: email,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
	}

	return &dto.ProfileResponse{
		ID:         user.ID,
		Email:      user.Email,
		IsPremium:  user.IsPremium,
		UsageCount: user.UsageCount,
	}, nil
}

// ConsumeGeneration counts one generation against today's allowance.
// Premium accounts are unlimited; the counter still tracks usage.
func (s *ProfileService) ConsumeGeneration(userID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	today := time.Now().Truncate(24 * time.Hour)
	if !user.LastUsageDay.Equal(today) {
		user.UsageCount = 0
		user.LastUsageDay = today
	}

	if !user.IsPremium && user.UsageCount >= s.cfg.FreeDailyLimit {
		return ErrUsageLimit
	}

	user.UsageCount++
	return s.db.Model(&user).Updates(map[string]interface{}{
		"usage_count":    user.UsageCount,
		"last_usage_day": user.LastUsageDay,
	}).Error
}
