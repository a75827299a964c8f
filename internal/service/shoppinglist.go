package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/feastly/backend/internal/models"
	"github.com/pageza/feastly/backend/internal/types"
)

// ShoppingListService consolidates the ingredient lines of every recipe
// in a user's cart into a single summed list.
type ShoppingListService struct {
	db *gorm.DB
}

// NewShoppingListService creates a new ShoppingListService instance
func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Aggregate groups the cart's ingredient lines by (name, measurement
// unit), sums the amounts and orders alphabetically by name. An empty
// cart yields an empty list.
func (s *ShoppingListService) Aggregate(ctx context.Context, userID uuid.UUID) ([]types.ShoppingListItem, error) {
	items := []types.ShoppingListItem{}
	err := s.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Render writes the aggregated list as the plain-text shopping list
// served to clients, one line per ingredient group.
func (s *ShoppingListService) Render(items []types.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString("Список покупок:\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s - %s %s\n", item.Name, formatAmount(item.TotalAmount), item.MeasurementUnit)
	}
	return b.String()
}

// formatAmount renders an amount without a trailing fractional part when
// it is a whole number.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
