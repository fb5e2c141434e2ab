package services

import (
	"fmt"
	"time"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/utils"
)

// Engagement 一篇文章的互动聚合，外加当前访客自己的状态
type Engagement struct {
	LikeCount       int64   `json:"like_count"`
	LoveCount       int64   `json:"love_count"`
	InsightfulCount int64   `json:"insightful_count"`
	TotalReactions  int64   `json:"total_reactions"`
	CommentsCount   int64   `json:"comments_count"`
	BookmarksCount  int64   `json:"bookmarks_count"`
	UserReaction    *string `json:"user_reaction"`
	IsBookmarked    bool    `json:"is_bookmarked"`
}

// sharedCounts 与访客无关的部分，可以安全地整体缓存
type sharedCounts struct {
	Like       int64
	Love       int64
	Insightful int64
	Comments   int64
	Bookmarks  int64
}

const engagementCacheTTL = 30 * time.Second

func engagementCacheKey(articleID uint) string {
	return fmt.Sprintf("engagement:counts:%d", articleID)
}

// GetEngagement 聚合文章互动数据。viewerID 为 0 表示未登录访客。
// 共享计数走短 TTL 缓存（热路径，详情页组件高频轮询）；
// 访客个人状态（自己的 reaction、是否收藏）永远实时查询。
func GetEngagement(articleID uint, viewerID uint) Engagement {
	var counts sharedCounts

	cacheKey := engagementCacheKey(articleID)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if c, ok := cached.(sharedCounts); ok {
			counts = c
		}
	} else {
		counts = loadSharedCounts(articleID)
		utils.GetCache().Set(cacheKey, counts, engagementCacheTTL)
	}

	eng := Engagement{
		LikeCount:       counts.Like,
		LoveCount:       counts.Love,
		InsightfulCount: counts.Insightful,
		TotalReactions:  counts.Like + counts.Love + counts.Insightful,
		CommentsCount:   counts.Comments,
		BookmarksCount:  counts.Bookmarks,
	}

	if viewerID > 0 {
		var reaction models.Reaction
		if err := db.DB.Where("article_id = ? AND user_id = ?", articleID, viewerID).First(&reaction).Error; err == nil {
			eng.UserReaction = &reaction.Type
		}

		var bookmark models.Bookmark
		if err := db.DB.Where("user_id = ? AND article_id = ?", viewerID, articleID).First(&bookmark).Error; err == nil {
			eng.IsBookmarked = true
		}
	}

	return eng
}

func loadSharedCounts(articleID uint) sharedCounts {
	var counts sharedCounts

	// 按类型分组统计 reaction
	type typeCount struct {
		Type  string
		Count int64
	}
	var rows []typeCount
	db.DB.Model(&models.Reaction{}).
		Select("type, count(*) as count").
		Where("article_id = ?", articleID).
		Group("type").
		Scan(&rows)
	for _, row := range rows {
		switch row.Type {
		case models.ReactionLike:
			counts.Like = row.Count
		case models.ReactionLove:
			counts.Love = row.Count
		case models.ReactionInsightful:
			counts.Insightful = row.Count
		}
	}

	// 公开评论数只统计 approved
	db.DB.Model(&models.Comment{}).
		Where("article_id = ? AND status = ?", articleID, models.CommentStatusApproved).
		Count(&counts.Comments)

	db.DB.Model(&models.Bookmark{}).Where("article_id = ?", articleID).Count(&counts.Bookmarks)

	return counts
}

// InvalidateEngagement 主动失效文章的互动计数缓存。
// 所有改变 reaction/bookmark/comment 的操作之后都要调用。
func InvalidateEngagement(articleID uint) {
	utils.GetCache().Delete(engagementCacheKey(articleID))
}
