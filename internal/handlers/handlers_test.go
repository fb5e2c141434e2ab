package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/middleware"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/services"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// setupTestDB 为每个测试开一个独立的内存库并替换全局 DB
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	db.DB = gdb
}

// newTestRouter 构建和 main 一致的路由。user 非 nil 时模拟已登录。
func newTestRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("test_secret"))
	r.Use(sessions.Sessions("test_session", store))
	if user != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.CheckUserKey, user)
			c.Next()
		})
	}

	articleHandler := NewArticleHandler()
	commentHandler := NewCommentHandler()
	reactionHandler := NewReactionHandler()
	bookmarkHandler := NewBookmarkHandler()
	engagementHandler := NewEngagementHandler()
	adminHandler := NewAdminHandler()

	api := r.Group("/api")
	api.GET("/articles/:slug", articleHandler.Detail)
	api.GET("/articles/:slug/comments", commentHandler.List)
	api.GET("/articles/:slug/engagement", engagementHandler.Get)

	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/articles/:slug/comments", commentHandler.Create)
		authorized.POST("/articles/:slug/reactions", reactionHandler.Toggle)
		authorized.POST("/articles/:slug/bookmark", bookmarkHandler.Toggle)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/comments", adminHandler.ModerationView)
		admin.PUT("/comments/:id/status", adminHandler.UpdateCommentStatus)
		admin.DELETE("/comments/:id", adminHandler.DeleteComment)
	}

	return r
}

func createTestUser(t *testing.T, email, role string) *models.User {
	t.Helper()
	user := models.User{
		Username: email,
		Email:    email,
		Password: "x",
		Role:     role,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func createTestArticle(t *testing.T, author *models.User) *models.Article {
	t.Helper()
	article := models.Article{
		Slug:    utils.RandString(10),
		UserID:  author.ID,
		Title:   "Test Article",
		Content: "Some content",
		Status:  models.ArticleStatusPublished,
	}
	if err := db.DB.Create(&article).Error; err != nil {
		t.Fatalf("failed to create article: %v", err)
	}
	// 内存库之间文章 ID 会重复，清掉可能残留的共享缓存
	services.InvalidateEngagement(article.ID)
	return &article
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getEngagement(t *testing.T, articleID, viewerID uint) services.Engagement {
	t.Helper()
	services.InvalidateEngagement(articleID)
	return services.GetEngagement(articleID, viewerID)
}

func reactionRowCount(t *testing.T, articleID, userID uint) int64 {
	t.Helper()
	var count int64
	db.DB.Model(&models.Reaction{}).Where("article_id = ? AND user_id = ?", articleID, userID).Count(&count)
	return count
}
