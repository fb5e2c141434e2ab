package services

import (
	"log"
	"sync"
	"time"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsService 批量累计文章浏览量。
// 详情页每次命中只做一次非阻塞调度，worker 定时把累计值
// 刷成一条 UPDATE 和一条按天的 PageView upsert，避免每个请求打一次库。
type AnalyticsService struct {
	mu     sync.Mutex
	counts map[uint]int
}

var (
	analyticsService *AnalyticsService
	analyticsOnce    sync.Once
)

// GetAnalyticsService 获取单例统计服务
func GetAnalyticsService() *AnalyticsService {
	analyticsOnce.Do(func() {
		analyticsService = &AnalyticsService{
			counts: make(map[uint]int),
		}
		go analyticsService.worker()
	})
	return analyticsService
}

// RecordView 记录一次浏览（非阻塞）
func (s *AnalyticsService) RecordView(articleID uint) {
	s.mu.Lock()
	s.counts[articleID]++
	s.mu.Unlock()
}

func (s *AnalyticsService) worker() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		s.Flush()
	}
}

// Flush 把累计的浏览量写入数据库。测试里直接调用以免等 ticker。
func (s *AnalyticsService) Flush() {
	s.mu.Lock()
	if len(s.counts) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.counts
	s.counts = make(map[uint]int)
	s.mu.Unlock()

	day := time.Now().Format("2006-01-02")
	for articleID, n := range batch {
		if err := db.DB.Model(&models.Article{}).Where("id = ?", articleID).
			UpdateColumn("views", gorm.Expr("views + ?", n)).Error; err != nil {
			log.Printf("Failed to flush views for article %d: %v", articleID, err)
			continue
		}

		pv := models.PageView{ArticleID: articleID, Day: day, Count: n}
		err := db.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "article_id"}, {Name: "day"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("page_views.count + ?", n)}),
		}).Create(&pv).Error
		if err != nil {
			log.Printf("Failed to upsert page view for article %d: %v", articleID, err)
		}
	}
}
