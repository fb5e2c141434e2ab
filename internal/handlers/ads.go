package handlers

import (
	"net/http"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdHandler struct{}

func NewAdHandler() *AdHandler {
	return &AdHandler{}
}

// ListEnabled 公开接口：只返回启用的广告位，前端渲染层负责注入
func (h *AdHandler) ListEnabled(c *gin.Context) {
	var slots []models.AdSlot
	db.DB.Where("enabled = ?", true).Order("id ASC").Find(&slots)
	c.JSON(http.StatusOK, gin.H{"ads": slots})
}

// ListAll 管理员查看全部广告位配置
func (h *AdHandler) ListAll(c *gin.Context) {
	var slots []models.AdSlot
	db.DB.Order("id ASC").Find(&slots)
	c.JSON(http.StatusOK, gin.H{"ads": slots})
}

type adSlotRequest struct {
	Provider *string `json:"provider"`
	Snippet  *string `json:"snippet"`
	Enabled  *bool   `json:"enabled"`
}

// Update 管理员更新广告位。Snippet 原样存储，不做内容校验。
func (h *AdHandler) Update(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var slot models.AdSlot
	if err := db.DB.First(&slot, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "ad slot not found")
		return
	}

	var req adSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Provider != nil {
		updates["provider"] = *req.Provider
	}
	if req.Snippet != nil {
		updates["snippet"] = *req.Snippet
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	if err := db.DB.Model(&slot).Updates(updates).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update ad slot")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ad": slot})
}
