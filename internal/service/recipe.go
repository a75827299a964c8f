package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/feastly/backend/internal/models"
	"github.com/pageza/feastly/backend/internal/types"
)

// RecipeService owns recipe rows and their tag/ingredient associations.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe validates the submission, collecting every violation before
// failing, then persists the recipe, its ingredient lines and its tag
// associations in one transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	var problems validationErrors
	if req.CookingTime < 1 {
		problems.add("cooking time must be at least 1 minute")
	}
	tags, tagProblems := s.checkTags(ctx, req.Tags)
	problems = append(problems, tagProblems...)
	lineProblems := s.checkIngredientLines(ctx, req.Ingredients)
	problems = append(problems, lineProblems...)
	if err := problems.err(); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		AuthorID:    authorID,
		ImageURL:    req.Image,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		if err := createIngredientLines(tx, recipe.ID, req.Ingredients); err != nil {
			return err
		}
		return tx.Model(&recipe).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe patches scalar fields and replaces the tag and ingredient
// sets wholesale. Only the author may update. Tags and ingredients are
// jointly mandatory: the full sets must accompany every update.
func (s *RecipeService) UpdateRecipe(ctx context.Context, recipeID, callerID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, translateDBError(err)
	}
	if recipe.AuthorID != callerID {
		return nil, ErrForbidden
	}

	var problems validationErrors
	if len(req.Tags) == 0 {
		problems.add("tags are required")
	}
	if len(req.Ingredients) == 0 {
		problems.add("ingredients are required")
	}
	if req.CookingTime != nil && *req.CookingTime < 1 {
		problems.add("cooking time must be at least 1 minute")
	}
	var tags []models.Tag
	if len(req.Tags) > 0 {
		var tagProblems validationErrors
		tags, tagProblems = s.checkTags(ctx, req.Tags)
		problems = append(problems, tagProblems...)
	}
	if len(req.Ingredients) > 0 {
		problems = append(problems, s.checkIngredientLines(ctx, req.Ingredients)...)
	}
	if err := problems.err(); err != nil {
		return nil, err
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Text != nil {
		recipe.Text = *req.Text
	}
	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}
	if req.Image != nil {
		recipe.ImageURL = *req.Image
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}
		// Ingredient lines are replaced wholesale, never patched.
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := createIngredientLines(tx, recipe.ID, req.Ingredients); err != nil {
			return err
		}
		return tx.Model(&recipe).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipe.ID)
}

// GetRecipe retrieves a recipe with its associations loaded.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, translateDBError(err)
	}
	return &recipe, nil
}

// DeleteRecipe removes an author's recipe together with its ingredient
// lines, tag associations and favorite/cart entries. Tag and Ingredient
// reference rows are left intact.
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID, callerID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return translateDBError(err)
	}
	if recipe.AuthorID != callerID {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.ShoppingCartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// ListRecipes returns recipes most-recent-first, narrowed by the filter.
func (s *RecipeService) ListRecipes(ctx context.Context, filter types.RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}
	if filter.AuthorID != uuid.Nil {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if filter.FavoritedBy != uuid.Nil {
		query = query.Joins(
			"JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id = ?",
			filter.FavoritedBy,
		)
	}
	if filter.InShoppingCartOf != uuid.Nil {
		query = query.Joins(
			"JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipes.id AND shopping_cart_entries.user_id = ?",
			filter.InShoppingCartOf,
		)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
		if filter.Page > 1 {
			query = query.Offset((filter.Page - 1) * filter.Limit)
		}
	}

	var recipes []models.Recipe
	err := query.
		Order("recipes.created_at DESC").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// checkTags verifies that the submitted tag ids are non-empty, distinct
// and all reference existing tags, naming every offender.
func (s *RecipeService) checkTags(ctx context.Context, ids []uuid.UUID) ([]models.Tag, validationErrors) {
	var problems validationErrors
	if len(ids) == 0 {
		problems.add("tags are required")
		return nil, problems
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			problems.add(fmt.Sprintf("duplicate tag %s", id))
		}
		seen[id] = true
	}
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		problems.add(fmt.Sprintf("failed to look up tags: %v", err))
		return nil, problems
	}
	found := make(map[uuid.UUID]bool, len(tags))
	for _, t := range tags {
		found[t.ID] = true
	}
	for id := range seen {
		if !found[id] {
			problems.add(fmt.Sprintf("tag %s does not exist", id))
		}
	}
	return tags, problems
}

// checkIngredientLines verifies that ingredient lines are non-empty, use
// distinct existing ingredients and carry positive amounts.
func (s *RecipeService) checkIngredientLines(ctx context.Context, lines []types.IngredientLine) validationErrors {
	var problems validationErrors
	if len(lines) == 0 {
		problems.add("ingredients are required")
		return problems
	}
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if seen[line.ID] {
			problems.add(fmt.Sprintf("duplicate ingredient %s", line.ID))
		}
		seen[line.ID] = true
		ids = append(ids, line.ID)
		if line.Amount <= 0 {
			problems.add(fmt.Sprintf("amount for ingredient %s must be greater than 0", line.ID))
		}
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		problems.add(fmt.Sprintf("failed to look up ingredients: %v", err))
		return problems
	}
	if int(count) != len(seen) {
		var existing []models.Ingredient
		s.db.WithContext(ctx).Where("id IN ?", ids).Find(&existing)
		found := make(map[uuid.UUID]bool, len(existing))
		for _, ing := range existing {
			found[ing.ID] = true
		}
		for id := range seen {
			if !found[id] {
				problems.add(fmt.Sprintf("ingredient %s does not exist", id))
			}
		}
	}
	return problems
}

func createIngredientLines(tx *gorm.DB, recipeID uuid.UUID, lines []types.IngredientLine) error {
	rows := make([]models.RecipeIngredient, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.ID,
			Amount:       line.Amount,
		})
	}
	return tx.Create(&rows).Error
}
