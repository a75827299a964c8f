package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/feastly/backend/internal/models"
)

const (
	shortLinkLength   = 8
	shortLinkAttempts = 5
	shortLinkCacheTTL = 24 * time.Hour
)

// ShortLinkService assigns and resolves short opaque recipe tokens. A
// recipe moves from unassigned to assigned exactly once; the token is
// permanent afterwards. Resolution goes through Redis when available.
type ShortLinkService struct {
	db    *gorm.DB
	cache *redis.Client
}

// NewShortLinkService creates a new ShortLinkService instance. cache may
// be nil, in which case resolution always hits the database.
func NewShortLinkService(db *gorm.DB, cache *redis.Client) *ShortLinkService {
	return &ShortLinkService{db: db, cache: cache}
}

// GetOrCreate returns the recipe's token, generating and persisting one
// on first call. Token collisions are caught by the unique index and
// retried with a fresh token.
func (s *ShortLinkService) GetOrCreate(ctx context.Context, recipeID uuid.UUID) (string, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return "", translateDBError(err)
	}
	if recipe.ShortLink != nil {
		return *recipe.ShortLink, nil
	}

	for attempt := 0; attempt < shortLinkAttempts; attempt++ {
		token := newShortToken()
		result := s.db.WithContext(ctx).
			Model(&models.Recipe{}).
			Where("id = ? AND short_link IS NULL", recipeID).
			Update("short_link", token)
		if result.Error != nil {
			if errors.Is(translateDBError(result.Error), ErrConflict) {
				continue
			}
			return "", result.Error
		}
		if result.RowsAffected == 0 {
			// A concurrent caller won the assignment; return its token.
			if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
				return "", translateDBError(err)
			}
			if recipe.ShortLink == nil {
				return "", errors.New("short link assignment lost")
			}
			token = *recipe.ShortLink
		}
		s.cacheToken(ctx, token, recipeID)
		return token, nil
	}
	return "", errors.New("failed to assign a unique short link")
}

// Resolve maps a token back to its recipe id, failing with ErrNotFound
// for unknown tokens.
func (s *ShortLinkService) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, shortLinkCacheKey(token)).Result()
		if err == nil {
			if id, parseErr := uuid.Parse(cached); parseErr == nil {
				return id, nil
			}
		}
	}

	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Select("id").
		First(&recipe, "short_link = ?", token).Error
	if err != nil {
		return uuid.Nil, translateDBError(err)
	}
	s.cacheToken(ctx, token, recipe.ID)
	return recipe.ID, nil
}

func (s *ShortLinkService) cacheToken(ctx context.Context, token string, recipeID uuid.UUID) {
	if s.cache == nil {
		return
	}
	// Cache failures only cost a database read on the next resolve.
	_ = s.cache.Set(ctx, shortLinkCacheKey(token), recipeID.String(), shortLinkCacheTTL).Err()
}

func shortLinkCacheKey(token string) string {
	return "shortlink:" + token
}

func newShortToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:shortLinkLength]
}
