package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/apperr"
	"github.com/yeremiapane/hoststay-app/middlewares"
	"github.com/yeremiapane/hoststay-app/services"
	"github.com/yeremiapane/hoststay-app/utils"
)

type CleaningController struct {
	DB      *gorm.DB
	Service *services.CleaningService
}

func NewCleaningController(db *gorm.DB) *CleaningController {
	return &CleaningController{
		DB:      db,
		Service: services.NewCleaningService(db),
	}
}

// CreateCleaning -> buat job cleaning baru (status pending) dengan outcome
// assignment dihitung saat itu juga.
func (cc *CleaningController) CreateCleaning(c *gin.Context) {
	type reqBody struct {
		PropertyID    uint      `json:"property_id" binding:"required"`
		ScheduledAt   time.Time `json:"scheduled_at" binding:"required"`
		Notes         string    `json:"notes"`
		ReservationID *uint     `json:"reservation_id"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cleaning, err := cc.Service.Create(middlewares.TenantID(c), services.CreateCleaningInput{
		PropertyID:    body.PropertyID,
		ScheduledAt:   body.ScheduledAt,
		Notes:         body.Notes,
		ReservationID: body.ReservationID,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Cleaning created", cleaning)
}

// GetAllCleanings -> list dengan filter status / needs_attention / property /
// rentang tanggal. Memakai cache attention untuk filter cepat.
func (cc *CleaningController) GetAllCleanings(c *gin.Context) {
	filter := services.CleaningFilter{
		Status: c.Query("status"),
	}
	if v := c.Query("property_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		filter.PropertyID = uint(id)
	}
	if v := c.Query("needs_attention"); v != "" {
		needs := v == "true" || v == "1"
		filter.NeedsAttention = &needs
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		filter.To = &t
	}

	cleanings, err := cc.Service.List(middlewares.TenantID(c), filter)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of cleanings", cleanings)
}

// GetCleaningByID -> detail dengan level + attention hasil rekomputasi.
func (cc *CleaningController) GetCleaningByID(c *gin.Context) {
	id, ok := cc.cleaningID(c)
	if !ok {
		return
	}

	detail, err := cc.Service.Get(middlewares.TenantID(c), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning detail", detail)
}

// StartCleaning -> pending => in_progress + bootstrap inventory review.
func (cc *CleaningController) StartCleaning(c *gin.Context) {
	id, ok := cc.cleaningID(c)
	if !ok {
		return
	}

	cleaning, err := cc.Service.Start(middlewares.TenantID(c), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Cleaning %d started", cleaning.ID)
	utils.RespondJSON(c, http.StatusOK, "Cleaning started", cleaning)
}

// CompleteCleaning -> in_progress => completed, dijaga gate inventory.
// Kalau review belum submitted, response 412 dengan kode
// INVENTORY_REVIEW_REQUIRED supaya client bisa redirect ke flow review.
func (cc *CleaningController) CompleteCleaning(c *gin.Context) {
	id, ok := cc.cleaningID(c)
	if !ok {
		return
	}

	cleaning, err := cc.Service.Complete(middlewares.TenantID(c), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Cleaning %d completed", cleaning.ID)
	utils.RespondJSON(c, http.StatusOK, "Cleaning completed", cleaning)
}

// CancelCleaning -> pending/in_progress => cancelled.
func (cc *CleaningController) CancelCleaning(c *gin.Context) {
	id, ok := cc.cleaningID(c)
	if !ok {
		return
	}

	cleaning, err := cc.Service.Cancel(middlewares.TenantID(c), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning cancelled", cleaning)
}

// ReopenCleaning -> completed => pending, timestamp dibersihkan.
func (cc *CleaningController) ReopenCleaning(c *gin.Context) {
	id, ok := cc.cleaningID(c)
	if !ok {
		return
	}

	cleaning, err := cc.Service.Reopen(middlewares.TenantID(c), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning reopened", cleaning)
}

// DeleteCleaning hanya boleh dari cancelled.
func (cc *CleaningController) DeleteCleaning(c *gin.Context) {
	id, ok := cc.cleaningID(c)
	if !ok {
		return
	}

	if err := cc.Service.Delete(middlewares.TenantID(c), id); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning deleted", gin.H{"cleaning_id": id})
}

// AssignCleaning -> set/ganti assignee. Tepat satu model (standard vs
// legacy) dipilih dari jenis id yang dikirim; model lainnya di-null-kan.
func (cc *CleaningController) AssignCleaning(c *gin.Context) {
	id, ok := cc.cleaningID(c)
	if !ok {
		return
	}

	type reqBody struct {
		MembershipID *uint `json:"membership_id"`
		MemberID     *uint `json:"member_id"` // model lama
		TeamID       *uint `json:"team_id"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var assignment services.Assignment
	switch {
	case body.MembershipID != nil && body.MemberID != nil:
		utils.RespondAppError(c, apperr.Validation("supply either membership_id or member_id, not both"))
		return
	case body.MembershipID != nil:
		assignment = services.IndividualStandard(*body.MembershipID, body.TeamID)
	case body.MemberID != nil:
		assignment = services.IndividualLegacy(*body.MemberID, body.TeamID)
	case body.TeamID != nil:
		assignment = services.TeamOnly(*body.TeamID)
	default:
		assignment = services.Unassigned()
	}

	cleaning, err := cc.Service.Assign(middlewares.TenantID(c), id, assignment)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning assignment updated", cleaning)
}

// DeclineCleaning -> assignee saat ini menolak job.
func (cc *CleaningController) DeclineCleaning(c *gin.Context) {
	id, ok := cc.cleaningID(c)
	if !ok {
		return
	}

	cleaning, err := cc.Service.Decline(middlewares.TenantID(c), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning assignment declined", cleaning)
}

func (cc *CleaningController) cleaningID(c *gin.Context) (uint, bool) {
	idStr := c.Param("cleaning_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return uint(id), true
}
