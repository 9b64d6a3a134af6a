package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/parsguard/vpn-portal/models"
)

// AdminByUsername looks up an admin by exact, case-sensitive username.
func (s *Storage) AdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// AdminByID returns the admin with the given id.
func (s *Storage) AdminByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).First(&admin, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// CreateAdmin persists a new admin row.
func (s *Storage) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	return s.db.WithContext(ctx).Create(admin).Error
}

// CountAdmins returns the number of admin rows.
func (s *Storage) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error
	return count, err
}

// UpdateAdminUsername renames an admin and returns the updated record, or
// (nil, nil) when the id does not exist.
func (s *Storage) UpdateAdminUsername(ctx context.Context, id uint, username string) (*models.Admin, error) {
	admin, err := s.AdminByID(ctx, id)
	if err != nil || admin == nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(admin).Update("username", username).Error; err != nil {
		return nil, err
	}
	return s.AdminByID(ctx, id)
}

// UpdateAdminPassword replaces the stored password hash.
func (s *Storage) UpdateAdminPassword(ctx context.Context, id uint, passwordHash string) error {
	return s.db.WithContext(ctx).Model(&models.Admin{}).
		Where("id = ?", id).Update("password", passwordHash).Error
}
