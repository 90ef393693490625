package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/config"
	"github.com/yeremiapane/hoststay-app/database"
	"github.com/yeremiapane/hoststay-app/models"
	"github.com/yeremiapane/hoststay-app/utils"
)

var rootCmd = &cobra.Command{
	Use:   "hoststay-migrate",
	Short: "Database migration helper for the HostStay backend",
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Run schema migration against the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Println("migration completed")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a demo tenant with one property, team and cleaner",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		return seedDemo(db)
	},
}

func openDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}
	return config.InitDB()
}

func seedDemo(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Name:     "Demo Host",
			Email:    "host@example.com",
			Password: "$2a$10$7EqJtq98hPqEX7fNZaFWoOa5cA1o1z1R8mPo6p0eM1P3h4n8o2jQe",
			Role:     models.RoleHost,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).Update("tenant_id", user.ID).Error; err != nil {
			return err
		}

		property := models.Property{TenantID: user.ID, Name: "Seaside Loft", City: "Lisbon", Timezone: "Europe/Lisbon"}
		if err := tx.Create(&property).Error; err != nil {
			return err
		}

		team := models.Team{TenantID: user.ID, Name: "Coastal Cleaners"}
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.PropertyTeam{PropertyID: property.ID, TeamID: team.ID}).Error; err != nil {
			return err
		}

		cleaner := models.User{
			TenantID: user.ID,
			Name:     "Demo Cleaner",
			Email:    "cleaner@example.com",
			Password: user.Password,
			Role:     models.RoleCleaner,
		}
		if err := tx.Create(&cleaner).Error; err != nil {
			return err
		}
		return tx.Create(&models.TeamMembership{
			TeamID: team.ID,
			UserID: cleaner.ID,
			Role:   models.MembershipRoleCleaner,
			Status: models.MembershipStatusActive,
		}).Error
	})
}

func main() {
	utils.InitLogger()
	rootCmd.AddCommand(upCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
