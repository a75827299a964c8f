package types

import (
	"time"

	"github.com/google/uuid"
)

// UserView is a user as seen by a particular viewer.
type UserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Avatar       string    `json:"avatar"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// RecipeIngredientView is one resolved ingredient line of a recipe.
type RecipeIngredientView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          float64   `json:"amount"`
}

// TagView mirrors the tag reference row.
type TagView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// RecipeView is a fully assembled recipe with per-viewer membership flags.
type RecipeView struct {
	ID                uuid.UUID              `json:"id"`
	Tags              []TagView              `json:"tags"`
	Author            UserView               `json:"author"`
	Ingredients       []RecipeIngredientView `json:"ingredients"`
	IsFavorited       bool                   `json:"is_favorited"`
	IsInShoppingCart  bool                   `json:"is_in_shopping_cart"`
	Name              string                 `json:"name"`
	Image             string                 `json:"image"`
	Text              string                 `json:"text"`
	CookingTime       int                    `json:"cooking_time"`
	CreatedAt         time.Time              `json:"created_at"`
}

// RecipeSummary is the short recipe form used in favorite/cart responses
// and in subscription listings.
type RecipeSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// SubscriptionView is one followed author together with a bounded recipe
// prefix and the author's true recipe count.
type SubscriptionView struct {
	UserView
	Recipes      []RecipeSummary `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

// ShoppingListItem is one consolidated line of an aggregated cart.
type ShoppingListItem struct {
	Name            string  `json:"name"`
	MeasurementUnit string  `json:"measurement_unit"`
	TotalAmount     float64 `json:"total_amount"`
}

// RecipeFilter narrows recipe listings; zero values mean "no filter".
type RecipeFilter struct {
	TagSlugs         []string
	AuthorID         uuid.UUID
	FavoritedBy      uuid.UUID
	InShoppingCartOf uuid.UUID
	Page             int
	Limit            int
}
