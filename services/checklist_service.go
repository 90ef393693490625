package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/apperr"
	"github.com/yeremiapane/hoststay-app/models"
)

type ChecklistService struct {
	DB *gorm.DB
}

func NewChecklistService(db *gorm.DB) *ChecklistService {
	return &ChecklistService{DB: db}
}

// EnsureSnapshot menyalin template checklist property ke cleaning, sekali
// saja. Dipanggil saat create dan oportunistis saat detail view pertama
// kalau snapshot-nya belum ada.
func (cls *ChecklistService) EnsureSnapshot(tenantID uint, cleaning *models.Cleaning) error {
	return cls.ensureSnapshotTx(cls.DB, tenantID, cleaning)
}

func (cls *ChecklistService) ensureSnapshotTx(tx *gorm.DB, tenantID uint, cleaning *models.Cleaning) error {
	var count int64
	if err := tx.Model(&models.CleaningChecklistItem{}).
		Where("tenant_id = ? AND cleaning_id = ?", tenantID, cleaning.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var templates []models.ChecklistTemplateItem
	if err := tx.Where("tenant_id = ? AND property_id = ?", tenantID, cleaning.PropertyID).
		Order("position asc").
		Find(&templates).Error; err != nil {
		return err
	}
	if len(templates) == 0 {
		return nil
	}

	items := make([]models.CleaningChecklistItem, 0, len(templates))
	for _, t := range templates {
		items = append(items, models.CleaningChecklistItem{
			TenantID:   tenantID,
			CleaningID: cleaning.ID,
			Label:      t.Label,
			Position:   t.Position,
		})
	}
	return tx.Create(&items).Error
}

func (cls *ChecklistService) ListForCleaning(tenantID, cleaningID uint) ([]models.CleaningChecklistItem, error) {
	var items []models.CleaningChecklistItem
	if err := cls.DB.Where("tenant_id = ? AND cleaning_id = ?", tenantID, cleaningID).
		Order("position asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Toggle adalah conditional update polos; rekonsiliasi optimistic ada di
// sisi client (sukses konfirmasi, gagal revert), server tidak mengasumsikan
// state checklist konsisten transaksional dengan status cleaning.
func (cls *ChecklistService) Toggle(tenantID, cleaningID, itemID uint, done bool) (*models.CleaningChecklistItem, error) {
	res := cls.DB.Model(&models.CleaningChecklistItem{}).
		Where("id = ? AND tenant_id = ? AND cleaning_id = ?", itemID, tenantID, cleaningID).
		Update("is_done", done)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("checklist item not found")
	}

	var item models.CleaningChecklistItem
	if err := cls.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("checklist item not found")
		}
		return nil, err
	}
	return &item, nil
}
