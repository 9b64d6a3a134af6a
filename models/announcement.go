package models

import (
	"time"

	"gorm.io/gorm"
)

// Announcement is a bilingual site notice. Inactive announcements stay in the
// admin dashboard but are hidden from the public site.
type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TitleEn   string    `gorm:"size:255;not null" json:"titleEn"`
	TitleFa   string    `gorm:"size:255;not null" json:"titleFa"`
	ContentEn string    `gorm:"type:text;not null" json:"contentEn"`
	ContentFa string    `gorm:"type:text;not null" json:"contentFa"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeUpdate refreshes UpdatedAt on every update.
func (a *Announcement) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return nil
}
