package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/feastly/backend/internal/database"
	"github.com/pageza/feastly/backend/internal/models"
	"github.com/pageza/feastly/backend/internal/types"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTag(t *testing.T, db *gorm.DB, name, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func createTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func createTestRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, lines ...types.IngredientLine) *models.Recipe {
	t.Helper()
	tag := createTestTag(t, db, name+" tag", name+"-tag")
	if len(lines) == 0 {
		ingredient := createTestIngredient(t, db, name+" filler", "g")
		lines = []types.IngredientLine{{ID: ingredient.ID, Amount: 100}}
	}
	svc := NewRecipeService(db)
	recipe, err := svc.CreateRecipe(context.Background(), author.ID, &types.CreateRecipeRequest{
		Name:        name,
		Text:        "Instructions for " + name,
		CookingTime: 30,
		Tags:        []uuid.UUID{tag.ID},
		Ingredients: lines,
	})
	require.NoError(t, err)
	return recipe
}
