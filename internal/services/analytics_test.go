package services

import (
	"testing"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
)

func TestAnalyticsFlush(t *testing.T) {
	setupTestDB(t)

	user := models.User{Username: "u", Email: "u@example.com", Password: "x"}
	db.DB.Create(&user)
	article := models.Article{Slug: "view-test", UserID: user.ID, Title: "T", Status: models.ArticleStatusPublished}
	db.DB.Create(&article)

	s := &AnalyticsService{counts: make(map[uint]int)}

	s.RecordView(article.ID)
	s.RecordView(article.ID)
	s.RecordView(article.ID)
	s.Flush()

	var got models.Article
	db.DB.First(&got, article.ID)
	if got.Views != 3 {
		t.Errorf("expected views=3, got %d", got.Views)
	}

	var pv models.PageView
	if err := db.DB.Where("article_id = ?", article.ID).First(&pv).Error; err != nil {
		t.Fatalf("expected page view row: %v", err)
	}
	if pv.Count != 3 {
		t.Errorf("expected page view count=3, got %d", pv.Count)
	}

	// 再来两次，同一天 upsert 累加
	s.RecordView(article.ID)
	s.RecordView(article.ID)
	s.Flush()

	db.DB.First(&got, article.ID)
	if got.Views != 5 {
		t.Errorf("expected views=5, got %d", got.Views)
	}
	var pvCount int64
	db.DB.Model(&models.PageView{}).Where("article_id = ?", article.ID).Count(&pvCount)
	if pvCount != 1 {
		t.Errorf("expected a single day row, got %d", pvCount)
	}
	db.DB.Where("article_id = ?", article.ID).First(&pv)
	if pv.Count != 5 {
		t.Errorf("expected accumulated count=5, got %d", pv.Count)
	}

	// 空 flush 不报错
	s.Flush()
}
