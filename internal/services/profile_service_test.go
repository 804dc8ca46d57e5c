package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/scriptgo/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileUnknownUser(t *testing.T) {
	svc := NewProfileService(newTestDB(t), newTestConfig())

	_, err := svc.GetProfile(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSyncProfileIdempotent(t *testing.T) {
	svc := NewProfileService(newTestDB(t), newTestConfig())
	id := uuid.New()

	first, err := svc.SyncProfile(id, "sync@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, first.ID)

	second, err := svc.SyncProfile(id, "sync@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	svc.db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestConsumeGenerationFreeLimit(t *testing.T) {
	cfg := newTestConfig()
	cfg.FreeDailyLimit = 2
	svc := NewProfileService(newTestDB(t), cfg)
	user := newTestUser(t, svc.db, "free@example.com", false)

	require.NoError(t, svc.ConsumeGeneration(user.ID))
	require.NoError(t, svc.ConsumeGeneration(user.ID))
	assert.ErrorIs(t, svc.ConsumeGeneration(user.ID), ErrUsageLimit)

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.UsageCount)
}

func TestConsumeGenerationPremiumUnlimited(t *testing.T) {
	cfg := newTestConfig()
	cfg.FreeDailyLimit = 1
	svc := NewProfileService(newTestDB(t), cfg)
	user := newTestUser(t, svc.db, "premium@example.com", true)

	for i := 0; i < 10; i++ {
		require.NoError(t, svc.ConsumeGeneration(user.ID))
	}

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, profile.UsageCount)
}

func TestConsumeGenerationDayRollover(t *testing.T) {
	cfg := newTestConfig()
	cfg.FreeDailyLimit = 2
	svc := NewProfileService(newTestDB(t), cfg)
	user := newTestUser(t, svc.db, "rollover@example.com", false)

	// Allowance exhausted yesterday.
	yesterday := time.Now().Truncate(24 * time.Hour).AddDate(0, 0, -1)
	require.NoError(t, svc.db.Model(user).Updates(map[string]interface{}{
		"usage_count":    2,
		"last_usage_day": yesterday,
	}).Error)

	// A new day resets the counter.
	require.NoError(t, svc.ConsumeGeneration(user.ID))

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.UsageCount)
}

func TestConsumeGenerationUnknownUser(t *testing.T) {
	svc := NewProfileService(newTestDB(t), newTestConfig())
	assert.ErrorIs(t, svc.ConsumeGeneration(uuid.New()), ErrUserNotFound)
}
