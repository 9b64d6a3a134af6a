package models

import "time"

// Application is a downloadable VPN client belonging to exactly one platform.
type Application struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PlatformID    uint      `gorm:"index;not null" json:"platformId"`
	NameEn        string    `gorm:"size:255;not null" json:"nameEn"`
	NameFa        string    `gorm:"size:255;not null" json:"nameFa"`
	DescriptionEn *string   `gorm:"type:text" json:"descriptionEn"`
	DescriptionFa *string   `gorm:"type:text" json:"descriptionFa"`
	DownloadLink  string    `gorm:"size:1024;not null" json:"downloadLink"`
	Version       *string   `gorm:"size:64" json:"version"`
	Order         int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt     time.Time `json:"createdAt"`
}
