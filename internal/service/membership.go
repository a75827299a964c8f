package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/feastly/backend/internal/models"
)

// MembershipKind selects which per-user recipe collection an operation
// targets.
type MembershipKind string

const (
	KindFavorite     MembershipKind = "favorite"
	KindShoppingCart MembershipKind = "shopping_cart"
)

// MembershipService tracks favorite and shopping-cart membership of
// recipes. Adds are rejected with ErrConflict when the pair already
// exists so callers can tell "already present" from "just added".
type MembershipService struct {
	db *gorm.DB
}

// NewMembershipService creates a new MembershipService instance
func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

// Add inserts the (user, recipe) pair. The composite unique index, not a
// prior existence check, is what rejects a concurrent duplicate writer.
func (s *MembershipService) Add(ctx context.Context, kind MembershipKind, userID, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("id").First(&recipe, "id = ?", recipeID).Error; err != nil {
		return translateDBError(err)
	}

	var err error
	switch kind {
	case KindFavorite:
		err = s.db.WithContext(ctx).Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
	case KindShoppingCart:
		err = s.db.WithContext(ctx).Create(&models.ShoppingCartEntry{UserID: userID, RecipeID: recipeID}).Error
	default:
		return errors.New("unknown membership kind")
	}
	return translateDBError(err)
}

// Remove deletes the (user, recipe) pair, failing with ErrNotFound when
// the pair is absent.
func (s *MembershipService) Remove(ctx context.Context, kind MembershipKind, userID, recipeID uuid.UUID) error {
	var result *gorm.DB
	switch kind {
	case KindFavorite:
		result = s.db.WithContext(ctx).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Delete(&models.Favorite{})
	case KindShoppingCart:
		result = s.db.WithContext(ctx).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Delete(&models.ShoppingCartEntry{})
	default:
		return errors.New("unknown membership kind")
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsMember reports whether the (user, recipe) pair exists. Pure read.
func (s *MembershipService) IsMember(ctx context.Context, kind MembershipKind, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	query := s.db.WithContext(ctx)
	switch kind {
	case KindFavorite:
		query = query.Model(&models.Favorite{})
	case KindShoppingCart:
		query = query.Model(&models.ShoppingCartEntry{})
	default:
		return false, errors.New("unknown membership kind")
	}
	err := query.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
