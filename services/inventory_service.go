package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/apperr"
	"github.com/yeremiapane/hoststay-app/models"
)

// CodeInventoryReviewRequired adalah satu-satunya kode blocking dari gate:
// review hilang, masih draft, maupun error lookup semuanya memblok dengan
// kode ini supaya caller bisa mengarahkan user ke flow remediasi.
const CodeInventoryReviewRequired = "INVENTORY_REVIEW_REQUIRED"

type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// EnsureDraft idempoten: pakai review yang sudah ada (draft ataupun
// submitted dibiarkan apa adanya), buat draft baru hanya kalau belum ada.
func (is *InventoryService) EnsureDraft(tenantID, cleaningID uint) (*models.InventoryReview, error) {
	return is.ensureDraftTx(is.DB, tenantID, cleaningID)
}

func (is *InventoryService) ensureDraftTx(tx *gorm.DB, tenantID, cleaningID uint) (*models.InventoryReview, error) {
	var review models.InventoryReview
	err := tx.Where("tenant_id = ? AND cleaning_id = ?", tenantID, cleaningID).First(&review).Error
	if err == nil {
		return &review, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review = models.InventoryReview{
		Ref:        uuid.NewString(),
		TenantID:   tenantID,
		CleaningID: cleaningID,
		Status:     models.ReviewStatusDraft,
	}
	if err := tx.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// CanComplete adalah precondition pada transisi complete: hanya lolos kalau
// review ada dan statusnya submitted.
func (is *InventoryService) CanComplete(tenantID, cleaningID uint) error {
	return is.canCompleteTx(is.DB, tenantID, cleaningID)
}

func (is *InventoryService) canCompleteTx(tx *gorm.DB, tenantID, cleaningID uint) error {
	var review models.InventoryReview
	if err := tx.Where("tenant_id = ? AND cleaning_id = ?", tenantID, cleaningID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Precondition("inventory review has not been submitted").
				WithCode(CodeInventoryReviewRequired)
		}
		return apperr.Wrap(apperr.KindPrecondition, "inventory review could not be checked", err).
			WithCode(CodeInventoryReviewRequired)
	}
	if review.Status != models.ReviewStatusSubmitted {
		return apperr.Precondition("inventory review has not been submitted").
			WithCode(CodeInventoryReviewRequired)
	}
	return nil
}

// Submit menutup review: draft -> submitted, conditional update supaya
// review yang sudah submitted tidak pernah tertulis ulang.
func (is *InventoryService) Submit(tenantID, cleaningID uint, notes string) (*models.InventoryReview, error) {
	now := time.Now()
	res := is.DB.Model(&models.InventoryReview{}).
		Where("tenant_id = ? AND cleaning_id = ? AND status = ?", tenantID, cleaningID, models.ReviewStatusDraft).
		Updates(map[string]interface{}{
			"status":       models.ReviewStatusSubmitted,
			"submitted_at": now,
			"notes":        notes,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var review models.InventoryReview
		if err := is.DB.Where("tenant_id = ? AND cleaning_id = ?", tenantID, cleaningID).First(&review).Error; err != nil {
			return nil, apperr.NotFound("inventory review not found")
		}
		// Sudah submitted: read-only.
		return nil, apperr.Conflict("inventory review is already submitted")
	}
	return is.GetByCleaning(tenantID, cleaningID)
}

func (is *InventoryService) GetByCleaning(tenantID, cleaningID uint) (*models.InventoryReview, error) {
	var review models.InventoryReview
	if err := is.DB.Where("tenant_id = ? AND cleaning_id = ?", tenantID, cleaningID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("inventory review not found")
		}
		return nil, err
	}
	return &review, nil
}
