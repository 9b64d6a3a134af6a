package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/parsguard/vpn-portal/models"
)

// TutorialScope selects which tutorial subset a listing returns.
type TutorialScope int

const (
	// TutorialsAll lists every tutorial.
	TutorialsAll TutorialScope = iota
	// TutorialsByCategory lists tutorials of one category.
	TutorialsByCategory
	// TutorialsByPlatform lists tutorials referencing one platform.
	TutorialsByPlatform
)

// TutorialFilter is the listing criteria, resolved once at the API boundary
// instead of inferred from whichever query parameters happen to be present.
type TutorialFilter struct {
	Scope      TutorialScope
	Category   string
	PlatformID uint
}

// Tutorials returns tutorials matching the filter, ordered by (order, id)
// ascending.
func (s *Storage) Tutorials(ctx context.Context, filter TutorialFilter) ([]models.Tutorial, error) {
	query := s.db.WithContext(ctx).Order(listOrder)
	switch filter.Scope {
	case TutorialsByCategory:
		query = query.Where("category = ?", filter.Category)
	case TutorialsByPlatform:
		query = query.Where("platform_id = ?", filter.PlatformID)
	}
	var tutorials []models.Tutorial
	err := query.Find(&tutorials).Error
	return tutorials, err
}

// TutorialByID returns a tutorial or (nil, nil) when absent.
func (s *Storage) TutorialByID(ctx context.Context, id uint) (*models.Tutorial, error) {
	var tutorial models.Tutorial
	err := s.db.WithContext(ctx).First(&tutorial, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tutorial, nil
}

// CreateTutorial persists a new tutorial.
func (s *Storage) CreateTutorial(ctx context.Context, tutorial *models.Tutorial) error {
	return s.db.WithContext(ctx).Create(tutorial).Error
}

// UpdateTutorial applies a partial field set and returns the updated record,
// or (nil, nil) when the id does not exist.
func (s *Storage) UpdateTutorial(ctx context.Context, id uint, fields map[string]any) (*models.Tutorial, error) {
	tutorial, err := s.TutorialByID(ctx, id)
	if err != nil || tutorial == nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(tutorial).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.TutorialByID(ctx, id)
}

// DeleteTutorial removes a tutorial. Deleting a non-existent id is a no-op.
func (s *Storage) DeleteTutorial(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Tutorial{}, id).Error
}
