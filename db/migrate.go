package db

import (
	"fmt"

	"github.com/nourishnet/nourishnet-api/models"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
