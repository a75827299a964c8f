package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/feastly/backend/internal/models"
	"github.com/pageza/feastly/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	SetPassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context, page, limit int) ([]models.User, error)
	SetAvatar(ctx context.Context, userID uuid.UUID, url string) error
	GenerateToken(userID uuid.UUID, username string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IRecipeService defines the interface for recipe authoring operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, recipeID, callerID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, recipeID, callerID uuid.UUID) error
	ListRecipes(ctx context.Context, filter types.RecipeFilter) ([]models.Recipe, error)
}

// IMembershipService defines the favorite/cart toggle contract
type IMembershipService interface {
	Add(ctx context.Context, kind MembershipKind, userID, recipeID uuid.UUID) error
	Remove(ctx context.Context, kind MembershipKind, userID, recipeID uuid.UUID) error
	IsMember(ctx context.Context, kind MembershipKind, userID, recipeID uuid.UUID) (bool, error)
}

// IShortLinkService defines short link assignment and resolution
type IShortLinkService interface {
	GetOrCreate(ctx context.Context, recipeID uuid.UUID) (string, error)
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}

// Ensure the concrete services satisfy their interfaces
var (
	_ IAuthService       = (*AuthService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
	_ IMembershipService = (*MembershipService)(nil)
	_ IShortLinkService  = (*ShortLinkService)(nil)
)
