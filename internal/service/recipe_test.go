package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/feastly/backend/internal/models"
	"github.com/pageza/feastly/backend/internal/types"
)

func TestCreateRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	author := createTestUser(t, db, "chef")
	tag := createTestTag(t, db, "Dinner", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")
	milk := createTestIngredient(t, db, "milk", "ml")

	recipe, err := svc.CreateRecipe(context.Background(), author.ID, &types.CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Tags:        []uuid.UUID{tag.ID},
		Ingredients: []types.IngredientLine{
			{ID: flour.ID, Amount: 200},
			{ID: milk.ID, Amount: 300},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", recipe.Name)
	assert.Equal(t, author.ID, recipe.AuthorID)
	require.Len(t, recipe.Tags, 1)
	assert.Equal(t, "dinner", recipe.Tags[0].Slug)
	require.Len(t, recipe.Ingredients, 2)
	require.NotNil(t, recipe.Author)
	assert.Equal(t, "chef", recipe.Author.Username)
}

func TestCreateRecipeCollectsAllProblems(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	author := createTestUser(t, db, "chef")
	flour := createTestIngredient(t, db, "flour", "g")
	missingTag := uuid.New()

	_, err := svc.CreateRecipe(context.Background(), author.ID, &types.CreateRecipeRequest{
		Name:        "Broken",
		Text:        "Nope.",
		CookingTime: 0,
		Tags:        []uuid.UUID{missingTag},
		Ingredients: []types.IngredientLine{
			{ID: flour.ID, Amount: 100},
			{ID: flour.ID, Amount: -5},
		},
	})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 4)
	assert.Contains(t, verr.Problems, "cooking time must be at least 1 minute")
	assert.Contains(t, verr.Problems, "tag "+missingTag.String()+" does not exist")
	assert.Contains(t, verr.Problems, "duplicate ingredient "+flour.ID.String())
	assert.Contains(t, verr.Problems, "amount for ingredient "+flour.ID.String()+" must be greater than 0")
}

func TestCreateRecipeRequiresTagsAndIngredients(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	author := createTestUser(t, db, "chef")

	_, err := svc.CreateRecipe(context.Background(), author.ID, &types.CreateRecipeRequest{
		Name:        "Empty",
		Text:        "Nothing in it.",
		CookingTime: 10,
	})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Problems, "tags are required")
	assert.Contains(t, verr.Problems, "ingredients are required")
}

func TestUpdateRecipeReplacesSets(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	author := createTestUser(t, db, "chef")
	recipe := createTestRecipe(t, db, author, "Soup")

	newTag := createTestTag(t, db, "Lunch", "lunch")
	onion := createTestIngredient(t, db, "onion", "pcs")
	newName := "Onion Soup"

	updated, err := svc.UpdateRecipe(context.Background(), recipe.ID, author.ID, &types.UpdateRecipeRequest{
		Name:        &newName,
		Tags:        []uuid.UUID{newTag.ID},
		Ingredients: []types.IngredientLine{{ID: onion.ID, Amount: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Onion Soup", updated.Name)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "lunch", updated.Tags[0].Slug)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, onion.ID, updated.Ingredients[0].IngredientID)
	assert.Equal(t, float64(3), updated.Ingredients[0].Amount)

	// Old lines are gone, not merged.
	var lineCount int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&lineCount).Error)
	assert.Equal(t, int64(1), lineCount)
}

func TestUpdateRecipeRequiresFullSets(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	author := createTestUser(t, db, "chef")
	recipe := createTestRecipe(t, db, author, "Soup")

	newName := "Renamed"
	_, err := svc.UpdateRecipe(context.Background(), recipe.ID, author.ID, &types.UpdateRecipeRequest{
		Name: &newName,
	})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Problems, "tags are required")
	assert.Contains(t, verr.Problems, "ingredients are required")
}

func TestUpdateRecipeForbiddenForNonAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	author := createTestUser(t, db, "chef")
	stranger := createTestUser(t, db, "stranger")
	recipe := createTestRecipe(t, db, author, "Soup")

	tag := createTestTag(t, db, "Lunch", "lunch")
	onion := createTestIngredient(t, db, "onion", "pcs")
	_, err := svc.UpdateRecipe(context.Background(), recipe.ID, stranger.ID, &types.UpdateRecipeRequest{
		Tags:        []uuid.UUID{tag.ID},
		Ingredients: []types.IngredientLine{{ID: onion.ID, Amount: 1}},
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteRecipeCascades(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	memberships := NewMembershipService(db)
	author := createTestUser(t, db, "chef")
	fan := createTestUser(t, db, "fan")
	recipe := createTestRecipe(t, db, author, "Soup")

	require.NoError(t, memberships.Add(context.Background(), KindFavorite, fan.ID, recipe.ID))
	require.NoError(t, memberships.Add(context.Background(), KindShoppingCart, fan.ID, recipe.ID))

	require.NoError(t, svc.DeleteRecipe(context.Background(), recipe.ID, author.ID))

	_, err := svc.GetRecipe(context.Background(), recipe.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Favorite{}).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.ShoppingCartEntry{}).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Zero(t, count)

	// Reference data survives the recipe.
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.NotZero(t, count)
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.NotZero(t, count)
}

func TestDeleteRecipeForbiddenForNonAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	author := createTestUser(t, db, "chef")
	stranger := createTestUser(t, db, "stranger")
	recipe := createTestRecipe(t, db, author, "Soup")

	assert.ErrorIs(t, svc.DeleteRecipe(context.Background(), recipe.ID, stranger.ID), ErrForbidden)
}

func TestListRecipesFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	memberships := NewMembershipService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	breakfast := createTestTag(t, db, "Breakfast", "breakfast")
	eggs := createTestIngredient(t, db, "eggs", "pcs")

	omelette, err := svc.CreateRecipe(context.Background(), alice.ID, &types.CreateRecipeRequest{
		Name:        "Omelette",
		Text:        "Whisk and fry.",
		CookingTime: 10,
		Tags:        []uuid.UUID{breakfast.ID},
		Ingredients: []types.IngredientLine{{ID: eggs.ID, Amount: 3}},
	})
	require.NoError(t, err)
	stew := createTestRecipe(t, db, bob, "Stew")

	require.NoError(t, memberships.Add(context.Background(), KindFavorite, bob.ID, omelette.ID))

	byTag, err := svc.ListRecipes(context.Background(), types.RecipeFilter{TagSlugs: []string{"breakfast"}})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, omelette.ID, byTag[0].ID)

	byAuthor, err := svc.ListRecipes(context.Background(), types.RecipeFilter{AuthorID: bob.ID})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, stew.ID, byAuthor[0].ID)

	favorited, err := svc.ListRecipes(context.Background(), types.RecipeFilter{FavoritedBy: bob.ID})
	require.NoError(t, err)
	require.Len(t, favorited, 1)
	assert.Equal(t, omelette.ID, favorited[0].ID)

	all, err := svc.ListRecipes(context.Background(), types.RecipeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetRecipeNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)

	_, err := svc.GetRecipe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
