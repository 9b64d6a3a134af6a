package models

import "time"

// Platform is a device platform (Android, iOS, Windows, ...) shown on the
// public site. Icon holds a client-side icon key, not a URL.
type Platform struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NameEn    string    `gorm:"size:255;not null" json:"nameEn"`
	NameFa    string    `gorm:"size:255;not null" json:"nameFa"`
	Icon      string    `gorm:"size:64;not null" json:"icon"`
	Order     int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}
