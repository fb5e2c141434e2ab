package models

import (
	"time"
)

// PageView 按天聚合的文章浏览量，由 AnalyticsService 批量写入
type PageView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;index;uniqueIndex:idx_article_day" json:"article_id"`
	Day       string    `gorm:"size:10;not null;uniqueIndex:idx_article_day" json:"day"` // YYYY-MM-DD
	Count     int       `gorm:"default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
