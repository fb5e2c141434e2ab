package models

import (
	"time"
)

// Comment statuses. "removed" is not a stored status: removal is a hard delete.
const (
	CommentStatusApproved = "approved"
	CommentStatusPending  = "pending"
	CommentStatusSpam     = "spam"
)

// ValidCommentStatus reports whether s is a status moderation may set.
func ValidCommentStatus(s string) bool {
	return s == CommentStatusApproved || s == CommentStatusPending || s == CommentStatusSpam
}

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;index" json:"article_id"`
	Article   Article   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"article"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ParentID  *uint     `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	Content   string    `gorm:"type:text;not null" json:"content"` // Stored verbatim, sanitization is the renderer's job
	Status    string    `gorm:"size:20;default:'approved';not null;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	// Deleting a parent does not cascade to replies; orphaned replies stay and
	// render as top-level.
}
