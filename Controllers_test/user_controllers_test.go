package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/controllers"
	"github.com/yeremiapane/hoststay-app/models"
	"github.com/yeremiapane/hoststay-app/utils"
)

func setupTestDBForUsers() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:user_ctrl?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		panic(err)
	}
	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)
	return router
}

func TestRegisterCreatesOwnWorkspace(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers()
	router := setupUserRouter(db)

	payload := map[string]interface{}{
		"name":     "Host One",
		"email":    "host1@example.com",
		"password": "supersecret",
	}
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/register", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "User registered", resp["message"])
	data := resp["data"].(map[string]interface{})
	// Tanpa tenant_id: workspace baru, tenant = id user pertamanya
	assert.Equal(t, data["user_id"], data["tenant_id"])
}

func TestRegisterJoinExistingWorkspaceAndLogin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers()
	router := setupUserRouter(db)

	// Host membuat workspace
	hostPayload, _ := json.Marshal(map[string]interface{}{
		"name":     "Host Two",
		"email":    "host2@example.com",
		"password": "supersecret",
	})
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(hostPayload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var hostResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &hostResp))
	tenantID := hostResp["data"].(map[string]interface{})["tenant_id"].(float64)

	// Cleaner join ke workspace yang sama
	cleanerPayload, _ := json.Marshal(map[string]interface{}{
		"name":      "Cleaner Two",
		"email":     "cleaner2@example.com",
		"password":  "supersecret",
		"role":      "cleaner",
		"tenant_id": tenantID,
	})
	req, _ = http.NewRequest("POST", "/register", bytes.NewBuffer(cleanerPayload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var cleanerResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cleanerResp))
	assert.Equal(t, tenantID, cleanerResp["data"].(map[string]interface{})["tenant_id"].(float64))

	// Login mengembalikan token + tenant claim
	loginPayload, _ := json.Marshal(map[string]interface{}{
		"email":    "cleaner2@example.com",
		"password": "supersecret",
	})
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(loginPayload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	loginData := loginResp["data"].(map[string]interface{})
	assert.NotEmpty(t, loginData["token"])
	assert.Equal(t, "cleaner", loginData["user_role"])
	assert.Equal(t, tenantID, loginData["tenant_id"].(float64))
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers()
	router := setupUserRouter(db)

	registerPayload, _ := json.Marshal(map[string]interface{}{
		"name":     "Host Three",
		"email":    "host3@example.com",
		"password": "supersecret",
	})
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(registerPayload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	loginPayload, _ := json.Marshal(map[string]interface{}{
		"email":    "host3@example.com",
		"password": "wrongpassword",
	})
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(loginPayload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
