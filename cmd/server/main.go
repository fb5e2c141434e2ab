package main

import (
	"log"
	"os"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/handlers"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/middleware"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// 启动后台服务（邮件分发、浏览量批量统计）
	services.GetNewsletterService()
	services.GetAnalyticsService()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("truthpill_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	// Handlers
	authHandler := handlers.NewAuthHandler()
	articleHandler := handlers.NewArticleHandler()
	categoryHandler := handlers.NewCategoryHandler()
	commentHandler := handlers.NewCommentHandler()
	reactionHandler := handlers.NewReactionHandler()
	bookmarkHandler := handlers.NewBookmarkHandler()
	engagementHandler := handlers.NewEngagementHandler()
	newsletterHandler := handlers.NewNewsletterHandler()
	adHandler := handlers.NewAdHandler()
	adminHandler := handlers.NewAdminHandler()
	aiHandler := handlers.NewAIHandler()

	api := r.Group("/api")

	// Public Routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/articles", articleHandler.List)
	api.GET("/articles/search", articleHandler.Search)
	api.GET("/articles/:slug", articleHandler.Detail)
	api.GET("/articles/:slug/comments", commentHandler.List)
	api.GET("/articles/:slug/engagement", engagementHandler.Get)
	api.GET("/categories", categoryHandler.List)
	api.GET("/ads", adHandler.ListEnabled)

	api.POST("/newsletter/subscribe", newsletterHandler.Subscribe)
	api.GET("/newsletter/confirm", newsletterHandler.Confirm)
	api.GET("/newsletter/unsubscribe", newsletterHandler.Unsubscribe)

	// Protected Routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", authHandler.Me)
		authorized.GET("/me/bookmarks", bookmarkHandler.List)

		authorized.POST("/articles", articleHandler.Create)
		authorized.PUT("/articles/:slug", articleHandler.Update)
		authorized.DELETE("/articles/:slug", articleHandler.Delete)

		authorized.POST("/articles/:slug/comments", commentHandler.Create)
		authorized.POST("/articles/:slug/reactions", reactionHandler.Toggle)
		authorized.POST("/articles/:slug/bookmark", bookmarkHandler.Toggle)
	}

	// Admin Routes
	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/articles", adminHandler.ListArticles)
		admin.GET("/comments", adminHandler.ModerationView)
		admin.PUT("/comments/:id/status", adminHandler.UpdateCommentStatus)
		admin.DELETE("/comments/:id", adminHandler.DeleteComment)

		admin.POST("/categories", categoryHandler.Create)
		admin.PUT("/categories/:id", categoryHandler.Update)
		admin.DELETE("/categories/:id", categoryHandler.Delete)

		admin.GET("/ads", adHandler.ListAll)
		admin.PUT("/ads/:id", adHandler.Update)

		admin.POST("/newsletter/issues", newsletterHandler.SendIssue)
		admin.GET("/analytics/overview", adminHandler.AnalyticsOverview)

		admin.POST("/ai/draft", aiHandler.Draft)
		admin.POST("/ai/summary", aiHandler.Summary)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("The Truth Pill server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
