package database

import (
	"gorm.io/gorm"

	"github.com/pageza/feastly/backend/internal/models"
)

// AutoMigrate creates or updates the schema for every domain entity.
// Order matters: referenced tables first.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingCartEntry{},
		&models.Follow{},
	)
}
