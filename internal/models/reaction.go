package models

import (
	"time"
)

// Reaction types
const (
	ReactionLike       = "like"
	ReactionLove       = "love"
	ReactionInsightful = "insightful"
)

// ValidReactionType reports whether t is one of the known reaction types.
func ValidReactionType(t string) bool {
	return t == ReactionLike || t == ReactionLove || t == ReactionInsightful
}

// Reaction 一个用户对一篇文章至多一条记录；切换类型时原地更新，保留 CreatedAt
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_article_reaction" json:"user_id"`
	ArticleID uint      `gorm:"not null;index;uniqueIndex:idx_user_article_reaction" json:"article_id"`
	Article   Article   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"article"`
	Type      string    `gorm:"size:20;not null" json:"type"` // like, love, insightful
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
