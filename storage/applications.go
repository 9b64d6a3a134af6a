package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/parsguard/vpn-portal/models"
)

// Applications returns all applications ordered by (order, id) ascending.
func (s *Storage) Applications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.WithContext(ctx).Order(listOrder).Find(&apps).Error
	return apps, err
}

// ApplicationsByPlatform returns the applications of one platform, same order.
func (s *Storage) ApplicationsByPlatform(ctx context.Context, platformID uint) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.WithContext(ctx).Where("platform_id = ?", platformID).
		Order(listOrder).Find(&apps).Error
	return apps, err
}

// ApplicationByID returns an application or (nil, nil) when absent.
func (s *Storage) ApplicationByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	err := s.db.WithContext(ctx).First(&app, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// CreateApplication persists a new application.
func (s *Storage) CreateApplication(ctx context.Context, app *models.Application) error {
	return s.db.WithContext(ctx).Create(app).Error
}

// UpdateApplication applies a partial field set and returns the updated
// record, or (nil, nil) when the id does not exist.
func (s *Storage) UpdateApplication(ctx context.Context, id uint, fields map[string]any) (*models.Application, error) {
	app, err := s.ApplicationByID(ctx, id)
	if err != nil || app == nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(app).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.ApplicationByID(ctx, id)
}

// DeleteApplication removes an application and nulls out tutorial references
// to it. Deleting a non-existent id is a no-op.
func (s *Storage) DeleteApplication(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Tutorial{}).Where("app_id = ?", id).
			Update("app_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Application{}, id).Error
	})
}
