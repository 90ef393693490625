package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/controllers"
	"github.com/yeremiapane/hoststay-app/models"
	"github.com/yeremiapane/hoststay-app/utils"
)

func setupTestDBForChecklists() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:checklist_ctrl?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Property{}, &models.Team{},
		&models.PropertyTeam{}, &models.LegacyPropertyTeam{},
		&models.TeamMembership{}, &models.TeamMember{},
		&models.Cleaning{}, &models.CleaningAssignee{},
		&models.InventoryReview{},
		&models.ChecklistTemplateItem{}, &models.CleaningChecklistItem{},
	)
	if err != nil {
		panic(err)
	}

	property := models.Property{TenantID: 1, Name: "Seaside Loft"}
	db.Create(&property)
	db.Create(&models.ChecklistTemplateItem{TenantID: 1, PropertyID: property.ID, Label: "Change linens", Position: 1})
	db.Create(&models.ChecklistTemplateItem{TenantID: 1, PropertyID: property.ID, Label: "Restock towels", Position: 2})

	return db
}

func setupChecklistRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Set("tenant_id", uint(1))
		c.Set("role", models.RoleHost)
	})

	cleaningCtrl := controllers.NewCleaningController(db)
	checklistCtrl := controllers.NewChecklistController(db)
	router.POST("/cleanings", cleaningCtrl.CreateCleaning)
	router.GET("/cleanings/:cleaning_id/checklist", checklistCtrl.GetChecklist)
	router.PATCH("/cleanings/:cleaning_id/checklist/:item_id", checklistCtrl.ToggleChecklistItem)
	return router
}

func TestChecklistSnapshotAndToggle(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForChecklists()
	router := setupChecklistRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"property_id":  1,
		"scheduled_at": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	req, _ := http.NewRequest("POST", "/cleanings", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	cleaningID := int(createResp["data"].(map[string]interface{})["id"].(float64))
	base := "/cleanings/" + strconv.Itoa(cleaningID) + "/checklist"

	// Snapshot dibuat saat create, urut position
	req, _ = http.NewRequest("GET", base, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var listResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	items := listResp["data"].([]interface{})
	assert.Len(t, items, 2)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Change linens", first["label"])
	assert.Equal(t, false, first["is_done"])
	itemID := int(first["id"].(float64))

	// Toggle is_done
	body, _ := json.Marshal(map[string]interface{}{"is_done": true})
	req, _ = http.NewRequest("PATCH", base+"/"+strconv.Itoa(itemID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var toggleResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggleResp))
	toggled := toggleResp["data"].(map[string]interface{})
	assert.Equal(t, true, toggled["is_done"])

	// Item yang tidak ada -> 404
	req, _ = http.NewRequest("PATCH", base+"/99999", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
