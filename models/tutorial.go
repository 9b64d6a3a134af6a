package models

import (
	"time"

	"gorm.io/datatypes"
)

// Tutorial types.
const (
	TutorialTypeText  = "text"
	TutorialTypeVideo = "video"
)

// Tutorial categories.
const (
	TutorialCategoryGeneral         = "general"
	TutorialCategoryBot             = "bot"
	TutorialCategoryTroubleshooting = "troubleshooting"
)

// Tutorial is a bilingual help article or video. It may reference zero, one,
// or both of a platform and an application; both references are nulled out
// (never cascade-deleted) when the referenced row disappears.
type Tutorial struct {
	ID         uint                       `gorm:"primaryKey" json:"id"`
	Type       string                     `gorm:"size:16;not null" json:"type"`
	Category   string                     `gorm:"size:32;not null;index" json:"category"`
	TitleEn    string                     `gorm:"size:255;not null" json:"titleEn"`
	TitleFa    string                     `gorm:"size:255;not null" json:"titleFa"`
	ContentEn  *string                    `gorm:"type:text" json:"contentEn"`
	ContentFa  *string                    `gorm:"type:text" json:"contentFa"`
	VideoURL   *string                    `gorm:"size:1024" json:"videoUrl"`
	Images     datatypes.JSONSlice[string] `gorm:"type:json" json:"images"`
	PlatformID *uint                      `gorm:"index" json:"platformId"`
	AppID      *uint                      `gorm:"index" json:"appId"`
	Order      int                        `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt  time.Time                  `json:"createdAt"`
}
