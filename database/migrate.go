package database

import (
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/models"
	"github.com/yeremiapane/hoststay-app/utils"
)

// Migrate menjalankan AutoMigrate untuk seluruh model lalu memastikan
// index komposit yang dipakai listing/filter.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Reservation{},
		&models.Team{},
		&models.PropertyTeam{},
		&models.LegacyPropertyTeam{},
		&models.TeamMembership{},
		&models.TeamMember{},
		&models.Cleaning{},
		&models.CleaningAssignee{},
		&models.InventoryReview{},
		&models.ChecklistTemplateItem{},
		&models.CleaningChecklistItem{},
	)
	if err != nil {
		return err
	}

	return EnsureIndexes(db)
}

// EnsureIndexes membuat index komposit untuk query listing yang sering:
// per-tenant per-status dan per-tenant yang butuh perhatian.
func EnsureIndexes(db *gorm.DB) error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_cleanings_tenant_status ON cleanings (tenant_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_cleanings_tenant_attention ON cleanings (tenant_id, needs_attention)",
		"CREATE INDEX IF NOT EXISTS idx_cleanings_tenant_scheduled ON cleanings (tenant_id, scheduled_at)",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			// MySQL lama tidak mendukung IF NOT EXISTS untuk index;
			// index dobel bukan alasan gagal boot.
			utils.ErrorLogger.Printf("ensure index: %v", err)
		}
	}
	return nil
}
