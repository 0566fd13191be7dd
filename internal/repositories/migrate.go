package repositories

import (
	"github.com/anonto42/content-hub/backend/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the PostgreSQL tables, including the unique
// indexes the toggle operations rely on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	)
}
