package handlers

import (
	"net/http"
	"strings"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/middleware"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if !strings.Contains(req.Email, "@") {
		JSONError(c, http.StatusBadRequest, "invalid email")
		return
	}
	if len(req.Password) < 6 {
		JSONError(c, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	if req.Username == "" {
		req.Username = strings.Split(req.Email, "@")[0]
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		JSONError(c, http.StatusConflict, "email already registered")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", strings.TrimSpace(strings.ToLower(req.Email))).First(&user).Error; err != nil {
		JSONError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		JSONError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me 返回当前用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	c.JSON(http.StatusOK, gin.H{"user": user})
}
