package owner

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope returns a GORM scope that filters rows by their owning user.
// Every script read and write goes through this filter.
func Scope(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
