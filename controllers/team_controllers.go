package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/middlewares"
	"github.com/yeremiapane/hoststay-app/models"
	"github.com/yeremiapane/hoststay-app/utils"
)

type TeamController struct {
	DB *gorm.DB
}

func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{DB: db}
}

// CreateTeam -> tim cleaning baru.
func (tc *TeamController) CreateTeam(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	team := models.Team{
		TenantID: middlewares.TenantID(c),
		Name:     req.Name,
	}
	if err := tc.DB.Create(&team).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New team created: %s (id=%d)", team.Name, team.ID)
	utils.RespondJSON(c, http.StatusCreated, "Team created", team)
}

// GetAllTeams -> seluruh tim milik tenant.
func (tc *TeamController) GetAllTeams(c *gin.Context) {
	var teams []models.Team
	if err := tc.DB.Where("tenant_id = ?", middlewares.TenantID(c)).Find(&teams).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of teams", teams)
}

// LinkProperty -> hubungkan tim ke property (tabel link standar).
func (tc *TeamController) LinkProperty(c *gin.Context) {
	team, ok := tc.loadTeam(c)
	if !ok {
		return
	}

	var req struct {
		PropertyID uint `json:"property_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var property models.Property
	if err := tc.DB.Where("id = ? AND tenant_id = ?", req.PropertyID, middlewares.TenantID(c)).
		First(&property).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	link := models.PropertyTeam{PropertyID: property.ID, TeamID: team.ID}
	if err := tc.DB.Create(&link).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Team linked to property", link)
}

// UnlinkProperty -> lepaskan link standar tim-property.
func (tc *TeamController) UnlinkProperty(c *gin.Context) {
	team, ok := tc.loadTeam(c)
	if !ok {
		return
	}

	propertyIDStr := c.Param("property_id")
	propertyID, err := strconv.ParseUint(propertyIDStr, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := tc.DB.Where("team_id = ? AND property_id = ?", team.ID, propertyID).
		Delete(&models.PropertyTeam{})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Team unlinked from property", gin.H{
		"team_id":     team.ID,
		"property_id": propertyID,
	})
}

// AddMembership -> keanggotaan model standar (dengan role).
func (tc *TeamController) AddMembership(c *gin.Context) {
	team, ok := tc.loadTeam(c)
	if !ok {
		return
	}

	var req struct {
		UserID uint   `json:"user_id" binding:"required"`
		Role   string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.MembershipRoleCleaner
	}

	var user models.User
	if err := tc.DB.Where("id = ? AND tenant_id = ?", req.UserID, middlewares.TenantID(c)).
		First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	membership := models.TeamMembership{
		TeamID: team.ID,
		UserID: user.ID,
		Role:   role,
		Status: models.MembershipStatusActive,
	}
	if err := tc.DB.Create(&membership).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Membership added", membership)
}

// DeactivateMembership -> nonaktifkan keanggotaan standar.
func (tc *TeamController) DeactivateMembership(c *gin.Context) {
	team, ok := tc.loadTeam(c)
	if !ok {
		return
	}

	membershipIDStr := c.Param("membership_id")
	membershipID, err := strconv.ParseUint(membershipIDStr, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := tc.DB.Model(&models.TeamMembership{}).
		Where("id = ? AND team_id = ?", membershipID, team.ID).
		Update("status", models.MembershipStatusInactive)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondJSON(c, http.StatusNotFound, "Membership not found", nil)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Membership deactivated", gin.H{"membership_id": membershipID})
}

// GetMembers -> gabungan kedua model keanggotaan untuk satu tim.
func (tc *TeamController) GetMembers(c *gin.Context) {
	team, ok := tc.loadTeam(c)
	if !ok {
		return
	}

	var memberships []models.TeamMembership
	if err := tc.DB.Preload("User").Where("team_id = ?", team.ID).Find(&memberships).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var legacyMembers []models.TeamMember
	if err := tc.DB.Where("team_id = ? AND tenant_id = ?", team.ID, middlewares.TenantID(c)).
		Find(&legacyMembers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Team members", gin.H{
		"memberships":    memberships,
		"legacy_members": legacyMembers,
	})
}

// AddLegacyMember -> tambah record member model lama. Masih dipakai selama
// masa migrasi; resolver eligibility membaca kedua model.
func (tc *TeamController) AddLegacyMember(c *gin.Context) {
	team, ok := tc.loadTeam(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	member := models.TeamMember{
		TeamID:   team.ID,
		TenantID: middlewares.TenantID(c),
		Name:     req.Name,
		IsActive: true,
	}
	if err := tc.DB.Create(&member).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Legacy member added", member)
}

// DeactivateLegacyMember -> set is_active=false pada member lama.
func (tc *TeamController) DeactivateLegacyMember(c *gin.Context) {
	team, ok := tc.loadTeam(c)
	if !ok {
		return
	}

	memberIDStr := c.Param("member_id")
	memberID, err := strconv.ParseUint(memberIDStr, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := tc.DB.Model(&models.TeamMember{}).
		Where("id = ? AND team_id = ? AND tenant_id = ?", memberID, team.ID, middlewares.TenantID(c)).
		Update("is_active", false)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondJSON(c, http.StatusNotFound, "Legacy member not found", nil)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Legacy member deactivated", gin.H{"member_id": memberID})
}

func (tc *TeamController) loadTeam(c *gin.Context) (*models.Team, bool) {
	idStr := c.Param("team_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return nil, false
	}

	var team models.Team
	if err := tc.DB.Where("id = ? AND tenant_id = ?", id, middlewares.TenantID(c)).
		First(&team).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return nil, false
	}
	return &team, true
}
