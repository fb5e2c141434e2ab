package handlers

import (
	"errors"
	"net/http"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/middleware"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReactionHandler struct{}

func NewReactionHandler() *ReactionHandler {
	return &ReactionHandler{}
}

type reactionRequest struct {
	Type string `json:"type"`
}

// Toggle 对文章的 reaction 三态切换：
// 无 → 新增；同类型 → 删除；不同类型 → 原地改类型（保留 CreatedAt）。
// 检查-写入在一个事务里执行，同一用户并发点按不会写出第二行。
func (h *ReactionHandler) Toggle(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	slug := c.Param("slug")

	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidReactionType(req.Type) {
		JSONError(c, http.StatusBadRequest, "invalid reaction type")
		return
	}

	var article models.Article
	if err := db.DB.Where("slug = ?", slug).First(&article).Error; err != nil {
		JSONError(c, http.StatusNotFound, "article not found")
		return
	}

	var result *string
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("article_id = ? AND user_id = ?", article.ID, user.ID).First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 没有反应，新增
			reaction := models.Reaction{
				UserID:    user.ID,
				ArticleID: article.ID,
				Type:      req.Type,
			}
			if err := tx.Create(&reaction).Error; err != nil {
				return err
			}
			result = &reaction.Type
			return nil
		case err != nil:
			return err
		case existing.Type == req.Type:
			// 同类型再点一次，撤销
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			result = nil
			return nil
		default:
			// 换类型，原地更新
			if err := tx.Model(&existing).Update("type", req.Type).Error; err != nil {
				return err
			}
			result = &req.Type
			return nil
		}
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to toggle reaction")
		return
	}

	services.InvalidateEngagement(article.ID)

	c.JSON(http.StatusOK, gin.H{"reaction": result})
}
