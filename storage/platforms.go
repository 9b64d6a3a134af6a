package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/parsguard/vpn-portal/models"
)

// Platforms returns all platforms ordered by (order, id) ascending.
func (s *Storage) Platforms(ctx context.Context) ([]models.Platform, error) {
	var platforms []models.Platform
	err := s.db.WithContext(ctx).Order(listOrder).Find(&platforms).Error
	return platforms, err
}

// PlatformByID returns a platform or (nil, nil) when absent.
func (s *Storage) PlatformByID(ctx context.Context, id uint) (*models.Platform, error) {
	var platform models.Platform
	err := s.db.WithContext(ctx).First(&platform, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &platform, nil
}

// CreatePlatform persists a new platform and fills in its generated fields.
func (s *Storage) CreatePlatform(ctx context.Context, platform *models.Platform) error {
	return s.db.WithContext(ctx).Create(platform).Error
}

// UpdatePlatform applies a partial field set and returns the updated record,
// or (nil, nil) when the id does not exist.
func (s *Storage) UpdatePlatform(ctx context.Context, id uint, fields map[string]any) (*models.Platform, error) {
	platform, err := s.PlatformByID(ctx, id)
	if err != nil || platform == nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(platform).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.PlatformByID(ctx, id)
}

// DeletePlatform removes a platform, cascades the delete to its applications,
// and nulls out tutorial references to the platform and the deleted
// applications. Deleting a non-existent id is a no-op.
func (s *Storage) DeletePlatform(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appIDs := tx.Model(&models.Application{}).Select("id").Where("platform_id = ?", id)
		if err := tx.Model(&models.Tutorial{}).Where("app_id IN (?)", appIDs).
			Update("app_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("platform_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Tutorial{}).Where("platform_id = ?", id).
			Update("platform_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Platform{}, id).Error
	})
}
