package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/middlewares"
	"github.com/yeremiapane/hoststay-app/services"
	"github.com/yeremiapane/hoststay-app/utils"
)

type ChecklistController struct {
	DB      *gorm.DB
	Service *services.ChecklistService
}

func NewChecklistController(db *gorm.DB) *ChecklistController {
	return &ChecklistController{
		DB:      db,
		Service: services.NewChecklistService(db),
	}
}

// GetChecklist -> item snapshot checklist untuk satu cleaning.
func (clc *ChecklistController) GetChecklist(c *gin.Context) {
	cleaningID, ok := parseUintParam(c, "cleaning_id")
	if !ok {
		return
	}

	items, err := clc.Service.ListForCleaning(middlewares.TenantID(c), cleaningID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning checklist", items)
}

// ToggleChecklistItem -> flip is_done satu item. Client meng-update UI
// optimistis; response ini yang mengkonfirmasi atau me-revert.
func (clc *ChecklistController) ToggleChecklistItem(c *gin.Context) {
	cleaningID, ok := parseUintParam(c, "cleaning_id")
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "item_id")
	if !ok {
		return
	}

	var req struct {
		IsDone bool `json:"is_done"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := clc.Service.Toggle(middlewares.TenantID(c), cleaningID, itemID, req.IsDone)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Checklist item updated", item)
}
