package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/controllers"
	"github.com/yeremiapane/hoststay-app/models"
	"github.com/yeremiapane/hoststay-app/utils"
)

func setupTestDBForTeams() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:team_ctrl?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Property{}, &models.Team{},
		&models.PropertyTeam{}, &models.LegacyPropertyTeam{},
		&models.TeamMembership{}, &models.TeamMember{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

func setupTeamRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Set("tenant_id", uint(1))
		c.Set("role", models.RoleHost)
	})

	teamCtrl := controllers.NewTeamController(db)
	router.POST("/teams", teamCtrl.CreateTeam)
	router.GET("/teams", teamCtrl.GetAllTeams)
	router.GET("/teams/:team_id/members", teamCtrl.GetMembers)
	router.POST("/teams/:team_id/properties", teamCtrl.LinkProperty)
	router.POST("/teams/:team_id/memberships", teamCtrl.AddMembership)
	router.PATCH("/teams/:team_id/memberships/:membership_id/deactivate", teamCtrl.DeactivateMembership)
	router.POST("/teams/:team_id/legacy-members", teamCtrl.AddLegacyMember)
	return router
}

func TestCreateTeamAndManageMembers(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTeams()
	router := setupTeamRouter(db)

	// Seed: user cleaner dan property milik tenant 1
	cleaner := models.User{TenantID: 1, Name: "Ana", Email: "ana-team@example.com", Password: "secret", Role: "cleaner"}
	db.Create(&cleaner)
	property := models.Property{TenantID: 1, Name: "Seaside Loft"}
	db.Create(&property)

	payload, _ := json.Marshal(map[string]interface{}{"name": "Coastal Cleaners"})
	req, _ := http.NewRequest("POST", "/teams", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var teamResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &teamResp))
	teamID := int(teamResp["data"].(map[string]interface{})["id"].(float64))
	base := "/teams/" + strconv.Itoa(teamID)

	// Link property
	payload, _ = json.Marshal(map[string]interface{}{"property_id": property.ID})
	req, _ = http.NewRequest("POST", base+"/properties", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Keanggotaan model standar
	payload, _ = json.Marshal(map[string]interface{}{"user_id": cleaner.ID})
	req, _ = http.NewRequest("POST", base+"/memberships", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var memResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &memResp))
	membership := memResp["data"].(map[string]interface{})
	assert.Equal(t, "cleaner", membership["role"])
	assert.Equal(t, "active", membership["status"])
	membershipID := int(membership["id"].(float64))

	// Member model lama berdampingan dengan yang standar
	payload, _ = json.Marshal(map[string]interface{}{"name": "Bo"})
	req, _ = http.NewRequest("POST", base+"/legacy-members", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// GetMembers menggabungkan kedua model
	req, _ = http.NewRequest("GET", base+"/members", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var membersResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &membersResp))
	membersData := membersResp["data"].(map[string]interface{})
	assert.Len(t, membersData["memberships"], 1)
	assert.Len(t, membersData["legacy_members"], 1)

	// Deactivate membership standar
	req, _ = http.NewRequest("PATCH", base+"/memberships/"+strconv.Itoa(membershipID)+"/deactivate", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.TeamMembership
	assert.NoError(t, db.First(&stored, membershipID).Error)
	assert.Equal(t, models.MembershipStatusInactive, stored.Status)
}

func TestTeamScopedToTenant(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTeams()
	router := setupTeamRouter(db)

	// Tim milik tenant lain tidak terlihat dan tidak bisa diubah
	foreign := models.Team{TenantID: 2, Name: "Other Crew"}
	db.Create(&foreign)

	req, _ := http.NewRequest("GET", "/teams/"+strconv.Itoa(int(foreign.ID))+"/members", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
