package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/middleware"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/services"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct{}

func NewArticleHandler() *ArticleHandler {
	return &ArticleHandler{}
}

// 公开可见：已发布，或定时发布且发布时间已过
const visibleWhere = "(status = ? OR (status = ? AND publish_at IS NOT NULL AND publish_at <= ?))"

// List 公开文章列表，按发布时间倒序，可按分类过滤
func (h *ArticleHandler) List(c *gin.Context) {
	offset, limit := page(c)

	query := db.DB.Model(&models.Article{}).
		Preload("User").Preload("Category").
		Where(visibleWhere, models.ArticleStatusPublished, models.ArticleStatusScheduled, time.Now())

	if slug := c.Query("category"); slug != "" {
		var cat models.Category
		if err := db.DB.Where("slug = ?", slug).First(&cat).Error; err != nil {
			JSONError(c, http.StatusNotFound, "category not found")
			return
		}
		query = query.Where("category_id = ?", cat.ID)
	}

	var total int64
	query.Count(&total)

	var articles []models.Article
	query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&articles)

	fillCommentCounts(articles)

	c.JSON(http.StatusOK, gin.H{"articles": articles, "total": total})
}

// Search 标题/正文关键词搜索，只搜公开可见文章
func (h *ArticleHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusOK, gin.H{"articles": []models.Article{}, "total": 0})
		return
	}
	offset, limit := page(c)

	like := "%" + q + "%"
	query := db.DB.Model(&models.Article{}).
		Preload("User").Preload("Category").
		Where(visibleWhere, models.ArticleStatusPublished, models.ArticleStatusScheduled, time.Now()).
		Where("(title LIKE ? OR content LIKE ?)", like, like)

	var total int64
	query.Count(&total)

	var articles []models.Article
	query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&articles)

	c.JSON(http.StatusOK, gin.H{"articles": articles, "total": total})
}

// Detail 文章详情。正文渲染为净化后的 HTML，浏览量走批量统计
func (h *ArticleHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")

	var article models.Article
	if err := db.DB.Preload("User").Preload("Category").Where("slug = ?", slug).First(&article).Error; err != nil {
		JSONError(c, http.StatusNotFound, "article not found")
		return
	}

	user := middleware.CurrentUser(c)
	if !article.IsVisible(time.Now()) {
		// 草稿和未到时间的定时稿只有作者和管理员可见
		if user == nil || (user.ID != article.UserID && !user.IsAdmin()) {
			JSONError(c, http.StatusNotFound, "article not found")
			return
		}
	} else {
		services.GetAnalyticsService().RecordView(article.ID)
	}

	// 渲染结果短期缓存，正文不随访客变化
	var contentHTML template.HTML
	cacheKey := fmt.Sprintf("article:html:%s", slug)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		contentHTML = cached.(template.HTML)
	} else {
		contentHTML = utils.RenderMarkdown(article.Content)
		utils.GetCache().Set(cacheKey, contentHTML, 5*time.Minute)
	}

	c.JSON(http.StatusOK, gin.H{
		"article":      article,
		"content_html": string(contentHTML),
	})
}

type articleRequest struct {
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	Content    string     `json:"content"`
	CategoryID *uint      `json:"category_id"`
	Status     string     `json:"status"`
	PublishAt  *time.Time `json:"publish_at"`
}

// Create 新建文章，默认草稿
func (h *ArticleHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		JSONError(c, http.StatusBadRequest, "title is required")
		return
	}

	status := models.ArticleStatusDraft
	if req.Status != "" {
		if !validArticleStatus(req.Status) {
			JSONError(c, http.StatusBadRequest, "invalid status")
			return
		}
		status = req.Status
	}
	if status == models.ArticleStatusScheduled && req.PublishAt == nil {
		JSONError(c, http.StatusBadRequest, "scheduled articles need publish_at")
		return
	}

	if req.CategoryID != nil {
		var cat models.Category
		if err := db.DB.First(&cat, *req.CategoryID).Error; err != nil {
			JSONError(c, http.StatusBadRequest, "category not found")
			return
		}
	}

	article := models.Article{
		Slug:       utils.RandString(10),
		UserID:     user.ID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Summary:    req.Summary,
		Content:    req.Content,
		Status:     status,
		PublishAt:  req.PublishAt,
	}
	if err := db.DB.Create(&article).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create article")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// Update 更新文章，作者或管理员
func (h *ArticleHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	slug := c.Param("slug")

	var article models.Article
	if err := db.DB.Where("slug = ?", slug).First(&article).Error; err != nil {
		JSONError(c, http.StatusNotFound, "article not found")
		return
	}
	if article.UserID != user.ID && !user.IsAdmin() {
		JSONError(c, http.StatusForbidden, "not your article")
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Summary != "" {
		updates["summary"] = req.Summary
	}
	if req.Content != "" {
		updates["content"] = req.Content
	}
	if req.CategoryID != nil {
		var cat models.Category
		if err := db.DB.First(&cat, *req.CategoryID).Error; err != nil {
			JSONError(c, http.StatusBadRequest, "category not found")
			return
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Status != "" {
		if !validArticleStatus(req.Status) {
			JSONError(c, http.StatusBadRequest, "invalid status")
			return
		}
		updates["status"] = req.Status
		if req.Status == models.ArticleStatusScheduled {
			if req.PublishAt == nil {
				JSONError(c, http.StatusBadRequest, "scheduled articles need publish_at")
				return
			}
			updates["publish_at"] = req.PublishAt
		}
		if req.Status == models.ArticleStatusPublished && article.PublishAt == nil {
			now := time.Now()
			updates["publish_at"] = &now
		}
	}

	if err := db.DB.Model(&article).Updates(updates).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update article")
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("article:html:%s", slug))

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// Delete 删除文章，互动数据随外键级联删除
func (h *ArticleHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	slug := c.Param("slug")

	var article models.Article
	if err := db.DB.Where("slug = ?", slug).First(&article).Error; err != nil {
		JSONError(c, http.StatusNotFound, "article not found")
		return
	}
	if article.UserID != user.ID && !user.IsAdmin() {
		JSONError(c, http.StatusForbidden, "not your article")
		return
	}

	if err := db.DB.Delete(&article).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to delete article")
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("article:html:%s", slug))
	services.InvalidateEngagement(article.ID)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func validArticleStatus(s string) bool {
	return s == models.ArticleStatusDraft || s == models.ArticleStatusScheduled || s == models.ArticleStatusPublished
}

// fillCommentCounts 填充列表里每篇文章的 approved 评论数
func fillCommentCounts(articles []models.Article) {
	if len(articles) == 0 {
		return
	}
	ids := make([]uint, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}

	type row struct {
		ArticleID uint
		Count     int
	}
	var rows []row
	db.DB.Model(&models.Comment{}).
		Select("article_id, count(*) as count").
		Where("article_id IN ? AND status = ?", ids, models.CommentStatusApproved).
		Group("article_id").
		Scan(&rows)

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.ArticleID] = r.Count
	}
	for i := range articles {
		articles[i].CommentCount = counts[articles[i].ID]
	}
}
