package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeViewMembershipFlags(t *testing.T) {
	db := setupTestDB(t)
	views := NewViewService(db)
	memberships := NewMembershipService(db)
	author := createTestUser(t, db, "chef")
	fan := createTestUser(t, db, "fan")
	recipe := createTestRecipe(t, db, author, "Soup")

	require.NoError(t, memberships.Add(context.Background(), KindFavorite, fan.ID, recipe.ID))

	view, err := views.RecipeView(context.Background(), recipe, fan.ID)
	require.NoError(t, err)
	assert.True(t, view.IsFavorited)
	assert.False(t, view.IsInShoppingCart)
	assert.Equal(t, "chef", view.Author.Username)
	require.Len(t, view.Ingredients, 1)
	assert.NotEmpty(t, view.Ingredients[0].Name)
}

func TestRecipeViewAnonymousViewer(t *testing.T) {
	db := setupTestDB(t)
	views := NewViewService(db)
	memberships := NewMembershipService(db)
	author := createTestUser(t, db, "chef")
	fan := createTestUser(t, db, "fan")
	recipe := createTestRecipe(t, db, author, "Soup")

	require.NoError(t, memberships.Add(context.Background(), KindFavorite, fan.ID, recipe.ID))

	view, err := views.RecipeView(context.Background(), recipe, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, view.IsFavorited)
	assert.False(t, view.IsInShoppingCart)
	assert.False(t, view.Author.IsSubscribed)
}

func TestUserViewSubscriptionFlag(t *testing.T) {
	db := setupTestDB(t)
	views := NewViewService(db)
	follows := NewFollowService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := follows.Follow(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	view, err := views.UserView(context.Background(), bob, alice.ID)
	require.NoError(t, err)
	assert.True(t, view.IsSubscribed)

	// Not symmetric.
	view, err = views.UserView(context.Background(), alice, bob.ID)
	require.NoError(t, err)
	assert.False(t, view.IsSubscribed)

	// Never subscribed to yourself.
	view, err = views.UserView(context.Background(), alice, alice.ID)
	require.NoError(t, err)
	assert.False(t, view.IsSubscribed)
}
