package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/models"
	"github.com/yeremiapane/hoststay-app/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register user baru. Tanpa tenant_id user mendapat workspace sendiri.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role"`      // host, cleaner, admin
		TenantID uint   `json:"tenant_id"` // opsional, join workspace yang sudah ada
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleHost
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		TenantID: req.TenantID,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if user.TenantID == 0 {
		// Workspace baru: tenant id = id user pertamanya.
		user.TenantID = user.ID
		if err := uc.DB.Model(&user).Update("tenant_id", user.TenantID).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s, tenant=%d)", user.Email, user.Role, user.TenantID)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id":   user.ID,
		"tenant_id": user.TenantID,
	})
}

// Login user -> return JWT dengan tenant claim.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.TenantID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for user: %s", user.Email)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_role": strings.ToLower(user.Role),
		"tenant_id": user.TenantID,
	})
}

// Logout -> blacklist token sampai kadaluarsa.
func (uc *UserController) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token != "" {
		utils.BlacklistToken(token)
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetProfile -> data user dari JWT.
func (uc *UserController) GetProfile(c *gin.Context) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	userID, ok := userIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid user id type"))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":        user.ID,
		"tenant_id": user.TenantID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
	})
}
