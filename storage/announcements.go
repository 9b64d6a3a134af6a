package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/parsguard/vpn-portal/models"
)

// Announcements returns announcements newest first. With activeOnly only
// records with isActive = true are included.
func (s *Storage) Announcements(ctx context.Context, activeOnly bool) ([]models.Announcement, error) {
	query := s.db.WithContext(ctx).Order("created_at desc, id desc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var announcements []models.Announcement
	err := query.Find(&announcements).Error
	return announcements, err
}

// AnnouncementByID returns an announcement or (nil, nil) when absent.
func (s *Storage) AnnouncementByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var announcement models.Announcement
	err := s.db.WithContext(ctx).First(&announcement, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

// CreateAnnouncement persists a new announcement.
func (s *Storage) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	return s.db.WithContext(ctx).Create(announcement).Error
}

// UpdateAnnouncement applies a partial field set, refreshes UpdatedAt, and
// returns the updated record, or (nil, nil) when the id does not exist.
func (s *Storage) UpdateAnnouncement(ctx context.Context, id uint, fields map[string]any) (*models.Announcement, error) {
	announcement, err := s.AnnouncementByID(ctx, id)
	if err != nil || announcement == nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(announcement).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.AnnouncementByID(ctx, id)
}

// DeleteAnnouncement removes an announcement. Deleting a non-existent id is a
// no-op.
func (s *Storage) DeleteAnnouncement(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Announcement{}, id).Error
}
