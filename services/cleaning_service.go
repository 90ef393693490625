package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/apperr"
	"github.com/yeremiapane/hoststay-app/models"
	"github.com/yeremiapane/hoststay-app/utils"
)

// CleaningService memiliki seluruh transisi lifecycle cleaning. Semua mutasi
// di-scope (id, tenant_id); tenant yang salah berperilaku persis seperti
// "tidak ditemukan". Transisi yang dijaga selalu satu conditional UPDATE,
// bukan read-then-write.
type CleaningService struct {
	DB          *gorm.DB
	Eligibility *EligibilityService
	Inventory   *InventoryService
	Checklist   *ChecklistService
}

func NewCleaningService(db *gorm.DB) *CleaningService {
	return &CleaningService{
		DB:          db,
		Eligibility: NewEligibilityService(db),
		Inventory:   NewInventoryService(db),
		Checklist:   NewChecklistService(db),
	}
}

type CreateCleaningInput struct {
	PropertyID    uint
	ScheduledAt   time.Time
	Notes         string
	ReservationID *uint
}

// CleaningDetail adalah hasil baca lengkap: record + level dan attention
// yang direkomputasi dari snapshot eligibility segar.
type CleaningDetail struct {
	Cleaning    models.Cleaning      `json:"cleaning"`
	Level       Level                `json:"level"`
	LevelName   string               `json:"level_name"`
	Attention   AttentionResult      `json:"attention"`
	Eligibility *EligibilitySnapshot `json:"eligibility"`
}

// Create membuat cleaning baru (status pending) dengan outcome assignment
// dihitung saat itu juga: satu member eligible -> auto-assign; nol ->
// attention; dua atau lebih -> dibiarkan open untuk pilihan manual.
func (cs *CleaningService) Create(tenantID uint, in CreateCleaningInput) (*models.Cleaning, error) {
	var property models.Property
	if err := cs.DB.Where("id = ? AND tenant_id = ?", in.PropertyID, tenantID).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("property not found")
		}
		return nil, err
	}

	// Error resolve = eligibility unknown; batalkan create, jangan pernah
	// diam-diam dianggap nol team.
	snapshot, err := cs.Eligibility.ResolveEligible(tenantID, in.PropertyID)
	if err != nil {
		return nil, err
	}

	cleaning := models.Cleaning{
		Ref:           uuid.NewString(),
		TenantID:      tenantID,
		PropertyID:    in.PropertyID,
		ScheduledAt:   in.ScheduledAt,
		Status:        models.CleaningStatusPending,
		Notes:         in.Notes,
		ReservationID: in.ReservationID,
		PropertyName:  property.Name,
		PropertyCity:  property.City,
	}

	var audit *models.CleaningAssignee
	switch {
	case snapshot.MemberCount() == 1:
		m := snapshot.Members[0]
		teamID := m.TeamID
		memberID := m.ID
		cleaning.TeamID = &teamID
		audit = &models.CleaningAssignee{Status: models.AssigneeStatusAssigned}
		if m.Source == MemberSourceMembership {
			cleaning.AssignedMembershipID = &memberID
			audit.MembershipID = &memberID
		} else {
			cleaning.AssignedMemberID = &memberID
			audit.MemberID = &memberID
		}
	case len(snapshot.TeamIDs) == 1:
		// Team-nya tidak ambigu walau pilihan individunya masih terbuka.
		teamID := snapshot.TeamIDs[0]
		cleaning.TeamID = &teamID
	}

	level := ClassifyAssignment(LevelInputOf(&cleaning, snapshot.HasTeams()))
	att := ComputeAttention(&cleaning, level, snapshot, time.Now())
	cleaning.NeedsAttention = att.NeedsAttention
	cleaning.AttentionReason = att.CacheReason()

	err = cs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cleaning).Error; err != nil {
			return err
		}
		if audit != nil {
			audit.CleaningID = cleaning.ID
			if err := tx.Create(audit).Error; err != nil {
				return err
			}
		}
		return cs.Checklist.ensureSnapshotTx(tx, tenantID, &cleaning)
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Cleaning %d created for property %d (level=%s, attention=%t)",
		cleaning.ID, cleaning.PropertyID, level.String(), cleaning.NeedsAttention)
	return &cleaning, nil
}

// Start: pending -> in_progress. Satu conditional update, jadi dua start
// bersamaan menghasilkan tepat satu pemenang. Pemenangnya juga memastikan
// ada InventoryReview draft (idempoten).
func (cs *CleaningService) Start(tenantID, id uint) (*models.Cleaning, error) {
	err := cs.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.Cleaning{}).
			Where("id = ? AND tenant_id = ? AND status = ?", id, tenantID, models.CleaningStatusPending).
			Updates(map[string]interface{}{
				"status":     models.CleaningStatusInProgress,
				"started_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return cs.wrongStateOrNotFound(tx, tenantID, id, "cleaning can only be started while pending")
		}
		_, err := cs.Inventory.ensureDraftTx(tx, tenantID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cs.reload(tenantID, id)
}

// Complete: in_progress -> completed, dijaga gate inventory review.
func (cs *CleaningService) Complete(tenantID, id uint) (*models.Cleaning, error) {
	err := cs.DB.Transaction(func(tx *gorm.DB) error {
		// Cek transisi dulu, baru gate inventory: cleaning yang belum
		// in_progress itu salah state, bukan kurang review.
		var current models.Cleaning
		if err := tx.Select("status").
			Where("id = ? AND tenant_id = ?", id, tenantID).
			First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("cleaning not found")
			}
			return err
		}
		if current.Status != models.CleaningStatusInProgress {
			return apperr.Conflict("cleaning can only be completed while in progress")
		}
		if err := cs.Inventory.canCompleteTx(tx, tenantID, id); err != nil {
			return err
		}
		now := time.Now()
		res := tx.Model(&models.Cleaning{}).
			Where("id = ? AND tenant_id = ? AND status = ?", id, tenantID, models.CleaningStatusInProgress).
			Updates(map[string]interface{}{
				"status":       models.CleaningStatusCompleted,
				"completed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return cs.wrongStateOrNotFound(tx, tenantID, id, "cleaning can only be completed while in progress")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cs.reload(tenantID, id)
}

// Cancel: pending atau in_progress -> cancelled. Timestamp tidak disentuh.
func (cs *CleaningService) Cancel(tenantID, id uint) (*models.Cleaning, error) {
	res := cs.DB.Model(&models.Cleaning{}).
		Where("id = ? AND tenant_id = ? AND status IN ?", id, tenantID,
			[]string{models.CleaningStatusPending, models.CleaningStatusInProgress}).
		Update("status", models.CleaningStatusCancelled)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := cs.wrongStateOrNotFound(cs.DB, tenantID, id, "cleaning can no longer be cancelled"); err != nil {
			return nil, err
		}
	}
	return cs.reload(tenantID, id)
}

// Reopen: completed -> pending, kedua timestamp dibersihkan.
func (cs *CleaningService) Reopen(tenantID, id uint) (*models.Cleaning, error) {
	res := cs.DB.Model(&models.Cleaning{}).
		Where("id = ? AND tenant_id = ? AND status = ?", id, tenantID, models.CleaningStatusCompleted).
		Updates(map[string]interface{}{
			"status":       models.CleaningStatusPending,
			"started_at":   nil,
			"completed_at": nil,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := cs.wrongStateOrNotFound(cs.DB, tenantID, id, "only completed cleanings can be reopened"); err != nil {
			return nil, err
		}
	}
	return cs.reload(tenantID, id)
}

// Delete hanya boleh dari cancelled; selain itu no-op (record tetap ada).
func (cs *CleaningService) Delete(tenantID, id uint) error {
	res := cs.DB.
		Where("id = ? AND tenant_id = ? AND status = ?", id, tenantID, models.CleaningStatusCancelled).
		Delete(&models.Cleaning{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return cs.wrongStateOrNotFound(cs.DB, tenantID, id, "only cancelled cleanings can be deleted")
	}
	return nil
}

// Assign menulis varian assignment baru: kolom kedua model + team_id +
// cache attention diperbarui dalam SATU update supaya tidak ada observer
// yang melihat state setengah jadi.
func (cs *CleaningService) Assign(tenantID, id uint, assignment Assignment) (*models.Cleaning, error) {
	if err := assignment.Validate(); err != nil {
		return nil, err
	}

	cleaning, err := cs.load(tenantID, id)
	if err != nil {
		return nil, err
	}
	if cleaning.Status == models.CleaningStatusCompleted || cleaning.Status == models.CleaningStatusCancelled {
		return nil, apperr.Conflict("assignment can no longer change on a finished cleaning")
	}

	snapshot, err := cs.Eligibility.ResolveEligible(tenantID, cleaning.PropertyID)
	if err != nil {
		return nil, err
	}

	// team_id eksplisit (varian team maupun individu) juga harus lolos
	// snapshot; team yang tidak ter-link ke property ditolak.
	if assignment.TeamID != nil && !snapshot.ContainsTeam(*assignment.TeamID) {
		return nil, apperr.Validation("team is not linked to this property")
	}

	if assignment.IsIndividual() {
		if !assigneeStillEligible(assignment, snapshot) {
			return nil, apperr.Validation("member is not eligible for this property")
		}
		if assignment.TeamID == nil {
			// Lengkapi team dari snapshot kalau caller tidak menyebutnya.
			for _, m := range snapshot.Members {
				if m.ID == assignment.Ref && m.Source == sourceOf(assignment) {
					teamID := m.TeamID
					assignment.TeamID = &teamID
					break
				}
			}
		}
	}

	// Hitung ulang attention pada state hipotetis setelah assignment.
	next := *cleaning
	next.TeamID = assignment.TeamID
	next.AssignedMembershipID = nil
	next.AssignedMemberID = nil
	if assignment.IsIndividual() {
		ref := assignment.Ref
		if assignment.Model == AssignmentModelStandard {
			next.AssignedMembershipID = &ref
		} else {
			next.AssignedMemberID = &ref
		}
	}
	level := ClassifyAssignment(LevelInputOf(&next, snapshot.HasTeams()))
	att := ComputeAttention(&next, level, snapshot, time.Now())

	cols := assignment.columns()
	cols["needs_attention"] = att.NeedsAttention
	cols["attention_reason"] = att.CacheReason()

	err = cs.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Cleaning{}).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("cleaning not found")
		}
		if assignment.IsIndividual() {
			ref := assignment.Ref
			audit := models.CleaningAssignee{CleaningID: id, Status: models.AssigneeStatusAssigned}
			if assignment.Model == AssignmentModelStandard {
				audit.MembershipID = &ref
			} else {
				audit.MemberID = &ref
			}
			return tx.Create(&audit).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cs.reload(tenantID, id)
}

// Decline: assignee sekarang menolak. Baris audit jadi declined, kolom
// individu dikosongkan, attention direkomputasi — satu transaksi.
func (cs *CleaningService) Decline(tenantID, id uint) (*models.Cleaning, error) {
	cleaning, err := cs.load(tenantID, id)
	if err != nil {
		return nil, err
	}
	current := AssignmentOf(cleaning)
	if !current.IsIndividual() {
		return nil, apperr.Conflict("no individual assignee to decline")
	}

	snapshot, err := cs.Eligibility.ResolveEligible(tenantID, cleaning.PropertyID)
	if err != nil {
		return nil, err
	}

	next := *cleaning
	next.AssignedMembershipID = nil
	next.AssignedMemberID = nil
	level := ClassifyAssignment(LevelInputOf(&next, snapshot.HasTeams()))
	att := ComputeAttention(&next, level, snapshot, time.Now())

	err = cs.DB.Transaction(func(tx *gorm.DB) error {
		auditQuery := tx.Model(&models.CleaningAssignee{}).
			Where("cleaning_id = ? AND status = ?", id, models.AssigneeStatusAssigned)
		if current.Model == AssignmentModelStandard {
			auditQuery = auditQuery.Where("membership_id = ?", current.Ref)
		} else {
			auditQuery = auditQuery.Where("member_id = ?", current.Ref)
		}
		if err := auditQuery.Update("status", models.AssigneeStatusDeclined).Error; err != nil {
			return err
		}

		return tx.Model(&models.Cleaning{}).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Updates(map[string]interface{}{
				"assigned_membership_id": nil,
				"assigned_member_id":     nil,
				"needs_attention":        att.NeedsAttention,
				"attention_reason":       att.CacheReason(),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return cs.reload(tenantID, id)
}

// Get mengembalikan detail dengan level + attention hasil rekomputasi dari
// snapshot segar, sekaligus merefresh cache kalau basi dan memastikan
// snapshot checklist ada (oportunistis saat detail view pertama).
func (cs *CleaningService) Get(tenantID, id uint) (*CleaningDetail, error) {
	cleaning, err := cs.load(tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := cs.Checklist.EnsureSnapshot(tenantID, cleaning); err != nil {
		utils.ErrorLogger.Printf("ensure checklist snapshot for cleaning %d: %v", cleaning.ID, err)
	}

	snapshot, err := cs.Eligibility.ResolveEligible(tenantID, cleaning.PropertyID)
	if err != nil {
		return nil, err
	}

	level := ClassifyAssignment(LevelInputOf(cleaning, snapshot.HasTeams()))
	att := ComputeAttention(cleaning, level, snapshot, time.Now())

	if cacheStale(cleaning, att) {
		if err := cs.DB.Model(&models.Cleaning{}).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Updates(map[string]interface{}{
				"needs_attention":  att.NeedsAttention,
				"attention_reason": att.CacheReason(),
			}).Error; err != nil {
			utils.ErrorLogger.Printf("refresh attention cache for cleaning %d: %v", cleaning.ID, err)
		} else {
			cleaning.NeedsAttention = att.NeedsAttention
			cleaning.AttentionReason = att.CacheReason()
		}
	}

	return &CleaningDetail{
		Cleaning:    *cleaning,
		Level:       level,
		LevelName:   level.String(),
		Attention:   att,
		Eligibility: snapshot,
	}, nil
}

type CleaningFilter struct {
	Status         string
	PropertyID     uint
	NeedsAttention *bool
	From           *time.Time
	To             *time.Time
}

// List memakai cache needs_attention/attention_reason untuk filter cepat;
// detail view yang melakukan rekomputasi penuh.
func (cs *CleaningService) List(tenantID uint, f CleaningFilter) ([]models.Cleaning, error) {
	q := cs.DB.Where("tenant_id = ?", tenantID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PropertyID != 0 {
		q = q.Where("property_id = ?", f.PropertyID)
	}
	if f.NeedsAttention != nil {
		q = q.Where("needs_attention = ?", *f.NeedsAttention)
	}
	if f.From != nil {
		q = q.Where("scheduled_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("scheduled_at < ?", *f.To)
	}

	var cleanings []models.Cleaning
	if err := q.Order("scheduled_at asc").Find(&cleanings).Error; err != nil {
		return nil, err
	}
	return cleanings, nil
}

func (cs *CleaningService) load(tenantID, id uint) (*models.Cleaning, error) {
	var cleaning models.Cleaning
	if err := cs.DB.Where("id = ? AND tenant_id = ?", id, tenantID).First(&cleaning).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cleaning not found")
		}
		return nil, err
	}
	return &cleaning, nil
}

func (cs *CleaningService) reload(tenantID, id uint) (*models.Cleaning, error) {
	return cs.load(tenantID, id)
}

// wrongStateOrNotFound membedakan dua alasan nol baris: record tidak ada
// untuk tenant ini (not found) atau statusnya salah (conflict, no-op).
func (cs *CleaningService) wrongStateOrNotFound(tx *gorm.DB, tenantID, id uint, message string) error {
	var count int64
	if err := tx.Model(&models.Cleaning{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound("cleaning not found")
	}
	return apperr.Conflict(message)
}

func cacheStale(c *models.Cleaning, att AttentionResult) bool {
	if c.NeedsAttention != att.NeedsAttention {
		return true
	}
	cached, fresh := c.AttentionReason, att.CacheReason()
	if (cached == nil) != (fresh == nil) {
		return true
	}
	return cached != nil && fresh != nil && *cached != *fresh
}

func sourceOf(a Assignment) string {
	if a.Model == AssignmentModelStandard {
		return MemberSourceMembership
	}
	return MemberSourceLegacy
}
