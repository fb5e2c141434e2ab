package handlers

import (
	"net/http"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List 全部分类
func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Create 管理员新建分类
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Slug == "" {
		JSONError(c, http.StatusBadRequest, "name and slug are required")
		return
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}
	if err := db.DB.Create(&category).Error; err != nil {
		JSONError(c, http.StatusConflict, "category already exists")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// Update 管理员更新分类
func (h *CategoryHandler) Update(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "category not found")
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Slug != "" {
		updates["slug"] = req.Slug
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if err := db.DB.Model(&category).Updates(updates).Error; err != nil {
		JSONError(c, http.StatusConflict, "failed to update category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// Delete 管理员删除分类，引用它的文章 category_id 置空
func (h *CategoryHandler) Delete(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "category not found")
		return
	}

	db.DB.Model(&models.Article{}).Where("category_id = ?", id).Update("category_id", nil)
	if err := db.DB.Delete(&category).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to delete category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
