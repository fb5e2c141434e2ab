package handlers

import (
	"net/http"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type AIHandler struct{}

func NewAIHandler() *AIHandler {
	return &AIHandler{}
}

type draftRequest struct {
	Title   string `json:"title"`
	Outline string `json:"outline"`
}

// Draft 根据标题和提纲生成 Markdown 草稿
func (h *AIHandler) Draft(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		JSONError(c, http.StatusBadRequest, "title is required")
		return
	}

	draft, err := services.GetLLMService().GenerateDraft(req.Title, req.Outline)
	if err != nil {
		JSONError(c, http.StatusBadGateway, "draft generation failed")
		return
	}
	if draft == services.ContentUnsuitable {
		JSONError(c, http.StatusUnprocessableEntity, "content unsuitable for publication")
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

type summaryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Summary 为文章生成摘要
func (h *AIHandler) Summary(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		JSONError(c, http.StatusBadRequest, "content is required")
		return
	}

	summary, err := services.GetLLMService().GenerateSummary(req.Title, req.Content)
	if err != nil {
		JSONError(c, http.StatusBadGateway, "summary generation failed")
		return
	}
	if summary == services.ContentUnsuitable {
		JSONError(c, http.StatusUnprocessableEntity, "content unsuitable for publication")
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
