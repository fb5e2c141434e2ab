package handlers

import (
	"net/http"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/services"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// ModeratedComment 审核视图里的一条评论，带评论者展示信息
type ModeratedComment struct {
	ID        uint   `json:"id"`
	ParentID  *uint  `json:"parent_id"`
	Content   string `json:"content"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
}

// ArticleCommentGroup 按文章分组的审核桶
type ArticleCommentGroup struct {
	ArticleID uint               `json:"article_id"`
	Title     string             `json:"title"`
	Slug      string             `json:"slug"`
	Comments  []ModeratedComment `json:"comments"`
}

// ModerationView 全量评论（不分状态）按文章分桶，驱动后台审核页。
// 桶按最新评论排前，桶内按时间倒序。
func (h *AdminHandler) ModerationView(c *gin.Context) {
	var comments []models.Comment
	db.DB.Preload("User").Preload("Article").
		Order("created_at DESC").
		Find(&comments)

	groups := make([]*ArticleCommentGroup, 0)
	index := make(map[uint]*ArticleCommentGroup)

	for _, com := range comments {
		group, ok := index[com.ArticleID]
		if !ok {
			group = &ArticleCommentGroup{
				ArticleID: com.ArticleID,
				Title:     com.Article.Title,
				Slug:      com.Article.Slug,
			}
			index[com.ArticleID] = group
			groups = append(groups, group)
		}
		group.Comments = append(group.Comments, ModeratedComment{
			ID:        com.ID,
			ParentID:  com.ParentID,
			Content:   com.Content,
			Status:    com.Status,
			CreatedAt: com.CreatedAt.Format("2006-01-02 15:04:05"),
			UserID:    com.UserID,
			Username:  com.User.Username,
			Avatar:    com.User.Avatar,
		})
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

type commentStatusRequest struct {
	Status string `json:"status"`
}

// UpdateCommentStatus 审核状态流转：approved/pending/spam。
// 状态只影响公开可见性和 approved 计数，行本身保留。
func (h *AdminHandler) UpdateCommentStatus(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var req commentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidCommentStatus(req.Status) {
		JSONError(c, http.StatusBadRequest, "invalid status")
		return
	}

	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "comment not found")
		return
	}

	if err := db.DB.Model(&comment).Update("status", req.Status).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update comment")
		return
	}

	services.InvalidateEngagement(comment.ArticleID)

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// DeleteComment 硬删除评论。不级联删除子回复，遗留的子回复按顶层展示。
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "comment not found")
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to delete comment")
		return
	}

	services.InvalidateEngagement(comment.ArticleID)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListArticles 后台文章列表，含草稿和定时稿
func (h *AdminHandler) ListArticles(c *gin.Context) {
	offset, limit := page(c)

	query := db.DB.Model(&models.Article{}).Preload("User").Preload("Category")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var articles []models.Article
	query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&articles)

	c.JSON(http.StatusOK, gin.H{"articles": articles, "total": total})
}

// AnalyticsOverview 后台统计总览
func (h *AdminHandler) AnalyticsOverview(c *gin.Context) {
	var articleCount, commentCount, subscriberCount int64
	db.DB.Model(&models.Article{}).Count(&articleCount)
	db.DB.Model(&models.Comment{}).Count(&commentCount)
	db.DB.Model(&models.Subscriber{}).Where("confirmed = ?", true).Count(&subscriberCount)

	type viewSum struct {
		Total int64
	}
	var views viewSum
	db.DB.Model(&models.Article{}).Select("COALESCE(SUM(views), 0) as total").Scan(&views)

	var topArticles []models.Article
	db.DB.Select("id, slug, title, views").Order("views DESC").Limit(10).Find(&topArticles)

	c.JSON(http.StatusOK, gin.H{
		"articles":     articleCount,
		"comments":     commentCount,
		"subscribers":  subscriberCount,
		"total_views":  views.Total,
		"top_articles": topArticles,
	})
}
