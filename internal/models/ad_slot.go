package models

import (
	"time"
)

// AdSlot 广告位配置。Snippet 是原样下发的广告代码，注入由前端渲染层负责
type AdSlot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:50;not null" json:"name"` // e.g. "article_top", "sidebar"
	Provider  string    `gorm:"size:50" json:"provider"`
	Snippet   string    `gorm:"type:text" json:"snippet"`
	Enabled   bool      `gorm:"default:false;index" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
