package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/middlewares"
	"github.com/yeremiapane/hoststay-app/models"
	"github.com/yeremiapane/hoststay-app/services"
	"github.com/yeremiapane/hoststay-app/utils"
)

type PropertyController struct {
	DB          *gorm.DB
	Eligibility *services.EligibilityService
}

func NewPropertyController(db *gorm.DB) *PropertyController {
	return &PropertyController{
		DB:          db,
		Eligibility: services.NewEligibilityService(db),
	}
}

// CreateProperty -> tambah property baru untuk tenant ini.
func (pc *PropertyController) CreateProperty(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Address  string `json:"address"`
		City     string `json:"city"`
		Timezone string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	property := models.Property{
		TenantID: middlewares.TenantID(c),
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Timezone: req.Timezone,
	}
	if property.Timezone == "" {
		property.Timezone = "UTC"
	}

	if err := pc.DB.Create(&property).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New property created: %s (id=%d)", property.Name, property.ID)
	utils.RespondJSON(c, http.StatusCreated, "Property created", property)
}

// GetAllProperties -> seluruh property milik tenant.
func (pc *PropertyController) GetAllProperties(c *gin.Context) {
	var properties []models.Property
	if err := pc.DB.Where("tenant_id = ?", middlewares.TenantID(c)).Find(&properties).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of properties", properties)
}

// GetPropertyByID -> detail satu property.
func (pc *PropertyController) GetPropertyByID(c *gin.Context) {
	property, ok := pc.loadProperty(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Property detail", property)
}

// UpdateProperty -> partial update.
func (pc *PropertyController) UpdateProperty(c *gin.Context) {
	property, ok := pc.loadProperty(c)
	if !ok {
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Address  *string `json:"address"`
		City     *string `json:"city"`
		Timezone *string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		property.Name = *req.Name
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.City != nil {
		property.City = *req.City
	}
	if req.Timezone != nil {
		property.Timezone = *req.Timezone
	}

	if err := pc.DB.Save(property).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Property updated", property)
}

// DeleteProperty -> hapus property.
func (pc *PropertyController) DeleteProperty(c *gin.Context) {
	property, ok := pc.loadProperty(c)
	if !ok {
		return
	}

	if err := pc.DB.Delete(property).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Property deleted", gin.H{"property_id": property.ID})
}

// GetEligibility -> snapshot team/cleaner yang bisa ditugaskan, union dari
// dua sumber keanggotaan.
func (pc *PropertyController) GetEligibility(c *gin.Context) {
	property, ok := pc.loadProperty(c)
	if !ok {
		return
	}

	snapshot, err := pc.Eligibility.ResolveEligible(middlewares.TenantID(c), property.ID)
	if err != nil {
		// Error store = eligibility unknown, bukan "nol team".
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Eligible teams and members", snapshot)
}

// AddChecklistTemplateItem -> tambah item template checklist property.
func (pc *PropertyController) AddChecklistTemplateItem(c *gin.Context) {
	property, ok := pc.loadProperty(c)
	if !ok {
		return
	}

	var req struct {
		Label    string `json:"label" binding:"required"`
		Position int    `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.ChecklistTemplateItem{
		TenantID:   middlewares.TenantID(c),
		PropertyID: property.ID,
		Label:      req.Label,
		Position:   req.Position,
	}
	if err := pc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Checklist template item added", item)
}

// GetChecklistTemplate -> seluruh item template untuk property.
func (pc *PropertyController) GetChecklistTemplate(c *gin.Context) {
	property, ok := pc.loadProperty(c)
	if !ok {
		return
	}

	var items []models.ChecklistTemplateItem
	if err := pc.DB.Where("tenant_id = ? AND property_id = ?", middlewares.TenantID(c), property.ID).
		Order("position asc").
		Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Checklist template", items)
}

func (pc *PropertyController) loadProperty(c *gin.Context) (*models.Property, bool) {
	idStr := c.Param("property_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return nil, false
	}

	var property models.Property
	if err := pc.DB.Where("id = ? AND tenant_id = ?", id, middlewares.TenantID(c)).
		First(&property).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return nil, false
	}
	return &property, true
}
