package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/scriptgo/backend/internal/config"
	"github.com/scriptgo/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a uniquely named in-memory database so parallel tests never
// share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.ResetToken{},
		&models.Script{},
	))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret-key-for-signing",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
		FreeDailyLimit:   5,
		ResetCodeExpiry:  time.Hour,
		EmailFrom:        "Test <test@example.com>",
		AppURL:           "http://localhost:3000",
	}
}

func newTestUser(t *testing.T, db *gorm.DB, email string, premium bool) *models.User {
	t.Helper()

	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "not-a-real-hash",
		IsPremium: premium,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// stubClient scripts the provider responses for generation tests.
type stubClient struct {
	complete func(ctx context.Context, system, prompt string) (string, error)
}

func (s *stubClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	return s.complete(ctx, system, prompt)
}
