package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/feastly/backend/internal/models"
)

// CatalogService serves the tag and ingredient reference data.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListTags returns all tags.
func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTag retrieves a tag by id.
func (s *CatalogService) GetTag(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &tag, nil
}

// CreateTag adds a reference tag. Duplicate names or slugs are conflicts.
func (s *CatalogService) CreateTag(ctx context.Context, name, slug string) (*models.Tag, error) {
	tag := models.Tag{Name: name, Slug: slug}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &tag, nil
}

// ListIngredients returns ingredients, optionally narrowed by name:
// prefix matches and substring matches, case-insensitive.
func (s *CatalogService) ListIngredients(ctx context.Context, name string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Order("name")
	if name != "" {
		like := "%" + name + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?)", like)
	}
	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetIngredient retrieves an ingredient by id.
func (s *CatalogService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &ingredient, nil
}

// ImportIngredients upserts (name, measurement unit) records by name,
// the bulk-seed path used by the CSV importer. Returns how many rows
// were newly created.
func (s *CatalogService) ImportIngredients(ctx context.Context, records [][2]string) (int, error) {
	created := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			name, unit := record[0], record[1]
			if name == "" {
				continue
			}
			var existing models.Ingredient
			err := tx.Where("name = ?", name).First(&existing).Error
			switch {
			case err == nil:
				if existing.MeasurementUnit != unit {
					existing.MeasurementUnit = unit
					if err := tx.Save(&existing).Error; err != nil {
						return err
					}
				}
			case err == gorm.ErrRecordNotFound:
				if err := tx.Create(&models.Ingredient{Name: name, MeasurementUnit: unit}).Error; err != nil {
					return err
				}
				created++
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
