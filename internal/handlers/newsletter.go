package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NewsletterHandler struct{}

func NewNewsletterHandler() *NewsletterHandler {
	return &NewsletterHandler{}
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe 订阅通讯。先入库为未确认，确认邮件走发送队列。
// 重复订阅同一邮箱幂等：未确认的重发确认信，已确认的直接返回成功。
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !strings.Contains(email, "@") {
		JSONError(c, http.StatusBadRequest, "invalid email")
		return
	}

	var sub models.Subscriber
	if err := db.DB.Where("email = ?", email).First(&sub).Error; err != nil {
		sub = models.Subscriber{
			Email: email,
			Token: uuid.NewString(),
		}
		if err := db.DB.Create(&sub).Error; err != nil {
			JSONError(c, http.StatusInternalServerError, "failed to subscribe")
			return
		}
	}

	if sub.Confirmed {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	payload := models.ConfirmPayload{Token: sub.Token}
	if err := services.GetNewsletterService().Enqueue(sub.Email, "Confirm your subscription", models.EmailKindConfirm, payload); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to queue confirmation email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Confirm 确认订阅
func (h *NewsletterHandler) Confirm(c *gin.Context) {
	token := c.Query("token")

	var sub models.Subscriber
	if err := db.DB.Where("token = ?", token).First(&sub).Error; err != nil {
		JSONError(c, http.StatusNotFound, "invalid token")
		return
	}

	if !sub.Confirmed {
		now := time.Now()
		db.DB.Model(&sub).Updates(map[string]interface{}{
			"confirmed":    true,
			"confirmed_at": &now,
		})
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Unsubscribe 退订，直接删行
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	token := c.Query("token")

	var sub models.Subscriber
	if err := db.DB.Where("token = ?", token).First(&sub).Error; err != nil {
		JSONError(c, http.StatusNotFound, "invalid token")
		return
	}

	db.DB.Delete(&sub)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type issueRequest struct {
	Subject string   `json:"subject"`
	Slugs   []string `json:"slugs"`
}

// SendIssue 管理员发刊：按 slug 选文章，给全部已确认订阅者排队邮件
func (h *NewsletterHandler) SendIssue(c *gin.Context) {
	var req issueRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Subject == "" || len(req.Slugs) == 0 {
		JSONError(c, http.StatusBadRequest, "subject and slugs are required")
		return
	}

	var articles []models.Article
	db.DB.Where("slug IN ?", req.Slugs).Find(&articles)
	if len(articles) == 0 {
		JSONError(c, http.StatusBadRequest, "no matching articles")
		return
	}

	issueArticles := make([]models.IssueArticle, len(articles))
	for i, a := range articles {
		issueArticles[i] = models.IssueArticle{
			Title:   a.Title,
			Slug:    a.Slug,
			Summary: a.Summary,
		}
	}

	queued, err := services.GetNewsletterService().QueueIssue(req.Subject, issueArticles)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to queue issue")
		return
	}

	c.JSON(http.StatusOK, gin.H{"queued": queued})
}
