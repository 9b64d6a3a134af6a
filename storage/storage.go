// Package storage is the data access layer: one method per entity and verb,
// translating between API inputs and stored rows. Get-by-id methods return
// (nil, nil) for a missing record; deletes are idempotent.
package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/parsguard/vpn-portal/models"
)

// Listing order for platforms, applications and tutorials. Announcements use
// creation time instead.
const listOrder = "sort_order asc, id asc"

// Storage wraps a gorm DB handle.
type Storage struct {
	db *gorm.DB
}

// New creates a Storage over the given database.
func New(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// Counts holds per-entity totals for the admin dashboard.
type Counts struct {
	Platforms     int64 `json:"platformCount"`
	Applications  int64 `json:"applicationCount"`
	Tutorials     int64 `json:"tutorialCount"`
	Announcements int64 `json:"announcementCount"`
}

// EntityCounts returns the number of rows per content entity.
func (s *Storage) EntityCounts(ctx context.Context) (Counts, error) {
	var c Counts
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Platform{}).Count(&c.Platforms).Error; err != nil {
		return c, err
	}
	if err := db.Model(&models.Application{}).Count(&c.Applications).Error; err != nil {
		return c, err
	}
	if err := db.Model(&models.Tutorial{}).Count(&c.Tutorials).Error; err != nil {
		return c, err
	}
	if err := db.Model(&models.Announcement{}).Count(&c.Announcements).Error; err != nil {
		return c, err
	}
	return c, nil
}
