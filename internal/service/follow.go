package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/feastly/backend/internal/models"
	"github.com/pageza/feastly/backend/internal/types"
)

// FollowService tracks user-to-user follow edges and assembles the
// subscriptions feed of followed authors.
type FollowService struct {
	db *gorm.DB
}

// NewFollowService creates a new FollowService instance
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow creates the edge userID -> targetID. Self-follow is a
// validation error; a duplicate edge is a conflict, enforced by the
// unique index rather than a racy existence check.
func (s *FollowService) Follow(ctx context.Context, userID, targetID uuid.UUID) (*models.Follow, error) {
	if userID == targetID {
		return nil, &ValidationError{Problems: []string{"cannot follow self"}}
	}
	var target models.User
	if err := s.db.WithContext(ctx).Select("id").First(&target, "id = ?", targetID).Error; err != nil {
		return nil, translateDBError(err)
	}
	edge := models.Follow{UserID: userID, FollowingID: targetID}
	if err := s.db.WithContext(ctx).Create(&edge).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &edge, nil
}

// Unfollow removes the edge userID -> targetID, failing with ErrNotFound
// when no such edge exists.
func (s *FollowService) Unfollow(ctx context.Context, userID, targetID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND following_id = ?", userID, targetID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFollowing reports whether the edge userID -> targetID exists.
func (s *FollowService) IsFollowing(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND following_id = ?", userID, targetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFollowing returns the authors the user follows, newest
// subscription first, each with a recipe prefix bounded by recipesLimit
// (0 means unbounded) and the author's true recipe count.
func (s *FollowService) ListFollowing(ctx context.Context, userID uuid.UUID, page, limit, recipesLimit int) ([]types.SubscriptionView, error) {
	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Following")
	if limit > 0 {
		query = query.Limit(limit)
		if page > 1 {
			query = query.Offset((page - 1) * limit)
		}
	}
	var edges []models.Follow
	if err := query.Find(&edges).Error; err != nil {
		return nil, err
	}

	views := make([]types.SubscriptionView, 0, len(edges))
	for _, edge := range edges {
		author := edge.Following
		if author == nil {
			continue
		}
		view := types.SubscriptionView{
			UserView: types.UserView{
				ID:           author.ID,
				Email:        author.Email,
				Username:     author.Username,
				FirstName:    author.FirstName,
				LastName:     author.LastName,
				Avatar:       author.AvatarURL,
				IsSubscribed: true,
			},
		}

		recipeQuery := s.db.WithContext(ctx).
			Where("author_id = ?", author.ID).
			Order("created_at DESC")
		if recipesLimit > 0 {
			recipeQuery = recipeQuery.Limit(recipesLimit)
		}
		var recipes []models.Recipe
		if err := recipeQuery.Find(&recipes).Error; err != nil {
			return nil, err
		}
		view.Recipes = make([]types.RecipeSummary, 0, len(recipes))
		for _, r := range recipes {
			view.Recipes = append(view.Recipes, types.RecipeSummary{
				ID:          r.ID,
				Name:        r.Name,
				Image:       r.ImageURL,
				CookingTime: r.CookingTime,
			})
		}

		// The true total, regardless of the prefix bound.
		if err := s.db.WithContext(ctx).
			Model(&models.Recipe{}).
			Where("author_id = ?", author.ID).
			Count(&view.RecipesCount).Error; err != nil {
			return nil, err
		}

		views = append(views, view)
	}
	return views, nil
}
