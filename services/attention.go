package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/hoststay-app/models"
)

const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// Kode non-struktural untuk payload saja; tidak pernah masuk cache
// attention_reason (cache hanya menyimpan kode struktural).
const reasonAwaitingAcceptance = "awaiting_acceptance"

// CTA mengarahkan host ke view perbaikan, plus jalan balik ke cleaning-nya.
type CTA struct {
	View     string `json:"view"`
	ReturnTo string `json:"return_to"`
}

type AttentionReason struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	CTA      *CTA   `json:"cta,omitempty"`
}

type AttentionResult struct {
	NeedsAttention bool              `json:"needs_attention"`
	Reasons        []AttentionReason `json:"reasons"`
}

// CacheReason mengembalikan kode struktural pertama untuk ditulis balik ke
// kolom attention_reason, atau nil kalau tidak ada masalah struktural.
func (r AttentionResult) CacheReason() *string {
	for _, reason := range r.Reasons {
		switch reason.Code {
		case models.ReasonNoTeamConfigured, models.ReasonNoAvailableMember, models.ReasonAssignedNotAvailable:
			code := reason.Code
			return &code
		}
	}
	return nil
}

// ComputeAttention menurunkan flag attention dari fakta saat ini. Selalu
// rekomputasi penuh dari level + snapshot; cache di record cleaning cuma
// optimasi listing, bukan sumber kebenaran. Reason struktural otomatis
// hilang begitu kondisi penyebabnya benar-benar beres, dan masalah lain
// yang masih ada tetap muncul sendiri.
func ComputeAttention(c *models.Cleaning, level Level, snapshot *EligibilitySnapshot, now time.Time) AttentionResult {
	var result AttentionResult

	// Cleaning yang sudah selesai atau dibatalkan tidak butuh intervensi.
	if c.Status == models.CleaningStatusCompleted || c.Status == models.CleaningStatusCancelled {
		return result
	}

	returnTo := fmt.Sprintf("/cleanings/%d", c.ID)
	teamsCTA := &CTA{View: "/teams", ReturnTo: returnTo}
	assignCTA := &CTA{View: fmt.Sprintf("/cleanings/%d/assign", c.ID), ReturnTo: returnTo}

	assignment := AssignmentOf(c)

	// Masalah struktural, selalu diturunkan ulang dari snapshot.
	switch {
	case !snapshot.HasTeams():
		result.Reasons = append(result.Reasons, AttentionReason{
			Code:     models.ReasonNoTeamConfigured,
			Severity: SeverityCritical,
			Title:    "No cleaning team configured",
			Detail:   "This property has no cleaning team linked, so nobody can pick up the job.",
			CTA:      teamsCTA,
		})
	case snapshot.MemberCount() == 0:
		// Kalau team sudah dipilih (level 2) gap-nya tinggal anggota,
		// bukan konteks; turunkan ke warning.
		severity := SeverityCritical
		if level >= LevelTeamAssigned {
			severity = SeverityWarning
		}
		result.Reasons = append(result.Reasons, AttentionReason{
			Code:     models.ReasonNoAvailableMember,
			Severity: severity,
			Title:    "No available cleaner",
			Detail:   "Teams are linked to this property but none of them has an active cleaner.",
			CTA:      teamsCTA,
		})
	}

	if assignment.IsIndividual() && !assigneeStillEligible(assignment, snapshot) {
		result.Reasons = append(result.Reasons, AttentionReason{
			Code:     models.ReasonAssignedNotAvailable,
			Severity: SeverityWarning,
			Title:    "Assigned cleaner no longer available",
			Detail:   "The cleaner assigned to this job is no longer an active member of the property's teams.",
			CTA:      assignCTA,
		})
	}

	// Belum ada individu yang menerima (level <= 2). Begitu hari yang
	// dijadwalkan lewat seluruhnya, gap ini moot dan tidak di-alert lagi.
	if level <= LevelTeamAssigned && !scheduleElapsed(c.ScheduledAt, now) {
		severity := SeverityWarning
		if level <= LevelContextAvailable {
			severity = SeverityCritical
		}
		if !hasStructuralReason(result.Reasons) {
			result.Reasons = append(result.Reasons, AttentionReason{
				Code:     reasonAwaitingAcceptance,
				Severity: severity,
				Title:    "No cleaner has accepted yet",
				Detail:   "The cleaning is scheduled but no individual cleaner has accepted it.",
				CTA:      assignCTA,
			})
		}
		result.NeedsAttention = true
	}

	if hasStructuralReason(result.Reasons) {
		result.NeedsAttention = true
	}

	return result
}

func assigneeStillEligible(a Assignment, snapshot *EligibilitySnapshot) bool {
	if a.Model == AssignmentModelStandard {
		return snapshot.ContainsMembership(a.Ref)
	}
	return snapshot.ContainsLegacyMember(a.Ref)
}

func hasStructuralReason(reasons []AttentionReason) bool {
	for _, r := range reasons {
		if r.Code != reasonAwaitingAcceptance {
			return true
		}
	}
	return false
}

// scheduleElapsed true kalau hari kalender jadwal cleaning sudah lewat
// seluruhnya.
func scheduleElapsed(scheduledAt, now time.Time) bool {
	y, m, d := scheduledAt.Date()
	endOfDay := time.Date(y, m, d, 0, 0, 0, 0, scheduledAt.Location()).AddDate(0, 0, 1)
	return !now.Before(endOfDay)
}
