package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/middlewares"
	"github.com/yeremiapane/hoststay-app/models"
	"github.com/yeremiapane/hoststay-app/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats menghitung statistik cleaning untuk dashboard host.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	var pendingCount, inProgressCount, completedCount, cancelledCount, attentionCount int64

	ac.DB.Model(&models.Cleaning{}).
		Where("tenant_id = ? AND status = ?", tenantID, models.CleaningStatusPending).
		Count(&pendingCount)
	ac.DB.Model(&models.Cleaning{}).
		Where("tenant_id = ? AND status = ?", tenantID, models.CleaningStatusInProgress).
		Count(&inProgressCount)
	ac.DB.Model(&models.Cleaning{}).
		Where("tenant_id = ? AND status = ?", tenantID, models.CleaningStatusCompleted).
		Count(&completedCount)
	ac.DB.Model(&models.Cleaning{}).
		Where("tenant_id = ? AND status = ?", tenantID, models.CleaningStatusCancelled).
		Count(&cancelledCount)
	ac.DB.Model(&models.Cleaning{}).
		Where("tenant_id = ? AND needs_attention = ?", tenantID, true).
		Count(&attentionCount)

	// Cleaning hari ini
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var todayCount int64
	ac.DB.Model(&models.Cleaning{}).
		Where("tenant_id = ? AND scheduled_at >= ? AND scheduled_at < ?",
			tenantID, startOfDay, startOfDay.AddDate(0, 0, 1)).
		Count(&todayCount)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"pending":         pendingCount,
		"in_progress":     inProgressCount,
		"completed":       completedCount,
		"cancelled":       cancelledCount,
		"needs_attention": attentionCount,
		"scheduled_today": todayCount,
		"total":           pendingCount + inProgressCount + completedCount + cancelledCount,
	})
}
