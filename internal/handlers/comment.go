package handlers

import (
	"net/http"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/middleware"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

type commentRequest struct {
	Content  string `json:"content"`
	ParentID *uint  `json:"parent_id"`
}

// Create 发表评论。登录用户直接 approved（不做前置审核，后台事后处置）。
// 内容原样入库，转义由前端渲染层负责。
func (h *CommentHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	slug := c.Param("slug")

	var article models.Article
	if err := db.DB.Where("slug = ?", slug).First(&article).Error; err != nil {
		JSONError(c, http.StatusNotFound, "article not found")
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		JSONError(c, http.StatusBadRequest, "content is required")
		return
	}

	// 父评论必须存在且属于同一篇文章，否则按顶层评论处理
	var parentID *uint
	if req.ParentID != nil {
		var parent models.Comment
		if err := db.DB.First(&parent, *req.ParentID).Error; err == nil && parent.ArticleID == article.ID {
			parentID = req.ParentID
		}
	}

	comment := models.Comment{
		ArticleID: article.ID,
		UserID:    user.ID,
		ParentID:  parentID,
		Content:   req.Content,
		Status:    models.CommentStatusApproved,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create comment")
		return
	}

	services.InvalidateEngagement(article.ID)

	comment.User = *user
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// List 文章的公开评论，只返回 approved
func (h *CommentHandler) List(c *gin.Context) {
	slug := c.Param("slug")

	var article models.Article
	if err := db.DB.Select("id").Where("slug = ?", slug).First(&article).Error; err != nil {
		JSONError(c, http.StatusNotFound, "article not found")
		return
	}

	var comments []models.Comment
	db.DB.Preload("User").
		Where("article_id = ? AND status = ?", article.ID, models.CommentStatusApproved).
		Order("created_at ASC").
		Find(&comments)

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
