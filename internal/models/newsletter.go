package models

import (
	"time"
)

// Subscriber 通讯订阅者，确认前不会收到任何期刊
type Subscriber struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Token       string     `gorm:"uniqueIndex;size:36;not null" json:"-"` // 确认/退订令牌
	Confirmed   bool       `gorm:"default:false;index" json:"confirmed"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Queued email statuses
const (
	EmailStatusPending = "pending"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
)

// Email template kinds. Each kind has a typed payload struct below; Payload
// holds its JSON encoding.
const (
	EmailKindConfirm = "confirm"
	EmailKindIssue   = "issue"
)

// QueuedEmail 待发送邮件队列行，由 NewsletterService 后台分发
type QueuedEmail struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ToEmail   string     `gorm:"not null" json:"to_email"`
	Subject   string     `gorm:"not null" json:"subject"`
	Kind      string     `gorm:"size:20;not null" json:"kind"`
	Payload   string     `gorm:"type:text" json:"payload"` // JSON encoding of the kind's payload struct
	Status    string     `gorm:"size:20;default:'pending';not null;index" json:"status"`
	Attempts  int        `gorm:"default:0" json:"attempts"`
	LastError string     `gorm:"size:500" json:"last_error"`
	SentAt    *time.Time `json:"sent_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// ConfirmPayload is the payload for EmailKindConfirm.
type ConfirmPayload struct {
	Token string `json:"token"`
}

// IssueArticle is one article entry inside an issue email.
type IssueArticle struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Summary string `json:"summary"`
}

// IssuePayload is the payload for EmailKindIssue.
type IssuePayload struct {
	Subject  string         `json:"subject"`
	Articles []IssueArticle `json:"articles"`
	Token    string         `json:"token"` // Recipient's unsubscribe token
}
