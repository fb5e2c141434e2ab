package handlers

import (
	"net/http"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/middleware"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct{}

func NewEngagementHandler() *EngagementHandler {
	return &EngagementHandler{}
}

// Get 文章互动聚合，未登录访客 userID 为 0
func (h *EngagementHandler) Get(c *gin.Context) {
	slug := c.Param("slug")

	var article models.Article
	if err := db.DB.Select("id").Where("slug = ?", slug).First(&article).Error; err != nil {
		JSONError(c, http.StatusNotFound, "article not found")
		return
	}

	viewerID := uint(0)
	if user := middleware.CurrentUser(c); user != nil {
		viewerID = user.ID
	}

	c.JSON(http.StatusOK, gin.H{"engagement": services.GetEngagement(article.ID, viewerID)})
}
