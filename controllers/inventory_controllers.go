package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/middlewares"
	"github.com/yeremiapane/hoststay-app/services"
	"github.com/yeremiapane/hoststay-app/utils"
)

type InventoryController struct {
	DB      *gorm.DB
	Service *services.InventoryService
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{
		DB:      db,
		Service: services.NewInventoryService(db),
	}
}

// GetReview -> review inventory milik satu cleaning.
func (ic *InventoryController) GetReview(c *gin.Context) {
	cleaningID, ok := parseUintParam(c, "cleaning_id")
	if !ok {
		return
	}

	review, err := ic.Service.GetByCleaning(middlewares.TenantID(c), cleaningID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory review", review)
}

// SubmitReview -> draft => submitted. Setelah ini review read-only dan
// cleaning-nya boleh di-complete.
func (ic *InventoryController) SubmitReview(c *gin.Context) {
	cleaningID, ok := parseUintParam(c, "cleaning_id")
	if !ok {
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	// Body opsional
	_ = c.ShouldBindJSON(&req)

	review, err := ic.Service.Submit(middlewares.TenantID(c), cleaningID, req.Notes)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Inventory review for cleaning %d submitted", cleaningID)
	utils.RespondJSON(c, http.StatusOK, "Inventory review submitted", review)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return uint(v), true
}
