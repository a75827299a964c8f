package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/feastly/backend/internal/models"
	"github.com/pageza/feastly/backend/internal/types"
)

// ViewService assembles read-side views: entities decorated with the
// per-viewer membership flags (is_favorited, is_in_shopping_cart,
// is_subscribed). An anonymous viewer is uuid.Nil and gets false flags.
type ViewService struct {
	db *gorm.DB
}

// NewViewService creates a new ViewService instance
func NewViewService(db *gorm.DB) *ViewService {
	return &ViewService{db: db}
}

// RecipeView builds the full recipe view for a viewer. The recipe must
// have Tags, Ingredients (with Ingredient) and Author preloaded.
func (s *ViewService) RecipeView(ctx context.Context, recipe *models.Recipe, viewerID uuid.UUID) (*types.RecipeView, error) {
	view := &types.RecipeView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		CreatedAt:   recipe.CreatedAt,
	}

	view.Tags = make([]types.TagView, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		view.Tags = append(view.Tags, types.TagView{ID: tag.ID, Name: tag.Name, Slug: tag.Slug})
	}

	view.Ingredients = make([]types.RecipeIngredientView, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		iv := types.RecipeIngredientView{ID: line.IngredientID, Amount: line.Amount}
		if line.Ingredient != nil {
			iv.Name = line.Ingredient.Name
			iv.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		view.Ingredients = append(view.Ingredients, iv)
	}

	if recipe.Author != nil {
		author, err := s.UserView(ctx, recipe.Author, viewerID)
		if err != nil {
			return nil, err
		}
		view.Author = *author
	}

	if viewerID != uuid.Nil {
		var err error
		view.IsFavorited, err = s.exists(ctx, &models.Favorite{}, viewerID, recipe.ID)
		if err != nil {
			return nil, err
		}
		view.IsInShoppingCart, err = s.exists(ctx, &models.ShoppingCartEntry{}, viewerID, recipe.ID)
		if err != nil {
			return nil, err
		}
	}
	return view, nil
}

// RecipeViews assembles views for a listing.
func (s *ViewService) RecipeViews(ctx context.Context, recipes []models.Recipe, viewerID uuid.UUID) ([]types.RecipeView, error) {
	views := make([]types.RecipeView, 0, len(recipes))
	for i := range recipes {
		view, err := s.RecipeView(ctx, &recipes[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// UserView builds a user view with the viewer's subscription flag.
func (s *ViewService) UserView(ctx context.Context, user *models.User, viewerID uuid.UUID) (*types.UserView, error) {
	view := &types.UserView{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.AvatarURL,
	}
	if viewerID != uuid.Nil && viewerID != user.ID {
		var count int64
		err := s.db.WithContext(ctx).
			Model(&models.Follow{}).
			Where("user_id = ? AND following_id = ?", viewerID, user.ID).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		view.IsSubscribed = count > 0
	}
	return view, nil
}

func (s *ViewService) exists(ctx context.Context, model interface{}, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
