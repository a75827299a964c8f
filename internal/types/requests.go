package types

import "github.com/google/uuid"

// IngredientLine is one quantified ingredient reference in a recipe
// submission.
type IngredientLine struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount float64   `json:"amount" binding:"required"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Name        string           `json:"name" binding:"required"`
	Text        string           `json:"text" binding:"required"`
	CookingTime int              `json:"cooking_time" binding:"required"`
	Tags        []uuid.UUID      `json:"tags"`
	Ingredients []IngredientLine `json:"ingredients"`
	Image       string           `json:"image"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
// Tags and ingredients are jointly mandatory: supplying one without the
// other is a validation error.
type UpdateRecipeRequest struct {
	Name        *string          `json:"name"`
	Text        *string          `json:"text"`
	CookingTime *int             `json:"cooking_time"`
	Tags        []uuid.UUID      `json:"tags"`
	Ingredients []IngredientLine `json:"ingredients"`
	Image       *string          `json:"image"`
}

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for token issuance
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SetPasswordRequest represents the request body for a password change
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// SetAvatarRequest carries a base64-encoded avatar image
type SetAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}
