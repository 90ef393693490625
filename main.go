package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/hoststay-app/config"
	"github.com/yeremiapane/hoststay-app/database"
	"github.com/yeremiapane/hoststay-app/router"
	"github.com/yeremiapane/hoststay-app/utils"
)

func init() {
	// Load .env di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InfoLogger = logrus.New()
	utils.ErrorLogger = logrus.New()

	utils.InfoLogger.SetOutput(os.Stdout)
	utils.ErrorLogger.SetOutput(os.Stderr)

	utils.InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	utils.ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Simpan koneksi database untuk dipakai di luar controller
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}
	utils.InfoLogger.Println("Migration completed.")

	r := router.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
