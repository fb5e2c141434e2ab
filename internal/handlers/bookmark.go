package handlers

import (
	"net/http"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/middleware"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct{}

func NewBookmarkHandler() *BookmarkHandler {
	return &BookmarkHandler{}
}

// Toggle 切换收藏状态 - 收藏/取消收藏
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	slug := c.Param("slug")

	// 检查文章是否存在
	var article models.Article
	if err := db.DB.Where("slug = ?", slug).First(&article).Error; err != nil {
		JSONError(c, http.StatusNotFound, "article not found")
		return
	}

	bookmarked := false
	var existing models.Bookmark
	if err := db.DB.Where("user_id = ? AND article_id = ?", user.ID, article.ID).First(&existing).Error; err == nil {
		// 已收藏，取消收藏
		db.DB.Delete(&existing)
	} else {
		// 未收藏，添加收藏
		bookmark := models.Bookmark{
			UserID:    user.ID,
			ArticleID: article.ID,
		}
		db.DB.Create(&bookmark)
		bookmarked = true
	}

	services.InvalidateEngagement(article.ID)

	var count int64
	db.DB.Model(&models.Bookmark{}).Where("article_id = ?", article.ID).Count(&count)

	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked, "count": count})
}

// List 当前用户的收藏列表
func (h *BookmarkHandler) List(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	offset, limit := page(c)

	var bookmarks []models.Bookmark
	db.DB.Preload("Article").Preload("Article.User").Preload("Article.Category").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&bookmarks)

	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks})
}
