package handlers

import (
	"github.com/kingonuoha/the-truth-pill-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

// JSONError 统一错误响应
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// page 解析分页参数，返回 offset 和 limit
func page(c *gin.Context) (int, int) {
	p := utils.StringToInt(c.DefaultQuery("page", "1"))
	if p < 1 {
		p = 1
	}
	size := utils.StringToInt(c.DefaultQuery("page_size", "20"))
	if size < 1 || size > 100 {
		size = 20
	}
	return (p - 1) * size, size
}
