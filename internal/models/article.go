package models

import (
	"time"
)

// Article statuses
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusScheduled = "scheduled"
	ArticleStatusPublished = "published"
)

type Article struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Slug       string     `gorm:"uniqueIndex;size:12;not null" json:"slug"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	User       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	CategoryID *uint      `gorm:"index" json:"category_id"` // Nullable, category delete sets it NULL
	Category   *Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category"`
	Title      string     `gorm:"not null" json:"title"`
	Summary    string     `gorm:"size:500" json:"summary"`
	Content    string     `gorm:"type:text" json:"content"` // Markdown source
	Status     string     `gorm:"size:20;default:'draft';not null;index" json:"status"`
	PublishAt  *time.Time `gorm:"index" json:"publish_at"` // Scheduled articles become visible once this passes
	Views      int        `gorm:"default:0" json:"views"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	CommentCount int `gorm:"-" json:"comment_count"`
}

// IsVisible reports whether the article should appear on public surfaces.
func (a *Article) IsVisible(now time.Time) bool {
	if a.Status == ArticleStatusPublished {
		return true
	}
	if a.Status == ArticleStatusScheduled && a.PublishAt != nil && !a.PublishAt.After(now) {
		return true
	}
	return false
}
