package services

import (
	"github.com/yeremiapane/hoststay-app/apperr"
	"github.com/yeremiapane/hoststay-app/models"
)

const (
	AssignmentKindUnassigned = "unassigned"
	AssignmentKindTeamOnly   = "team_only"
	AssignmentKindIndividual = "individual"

	AssignmentModelStandard = "standard"
	AssignmentModelLegacy   = "legacy"
)

// Assignment adalah varian tunggal pengganti tiga kolom nullable yang
// independen di Cleaning. Skema flat mengizinkan kombinasi invalid (dua
// model terisi sekaligus); invariannya dijaga di sini, di batas domain,
// dan persistence cuma mapping lossy dari/ke varian ini.
type Assignment struct {
	Kind   string `json:"kind"`            // unassigned | team_only | individual
	Model  string `json:"model,omitempty"` // standard | legacy (hanya untuk individual)
	Ref    uint   `json:"ref,omitempty"`   // membership id atau legacy member id
	TeamID *uint  `json:"team_id,omitempty"`
}

// Unassigned membentuk varian tanpa executor sama sekali.
func Unassigned() Assignment {
	return Assignment{Kind: AssignmentKindUnassigned}
}

// TeamOnly membentuk varian yang baru sampai level team.
func TeamOnly(teamID uint) Assignment {
	id := teamID
	return Assignment{Kind: AssignmentKindTeamOnly, TeamID: &id}
}

// IndividualStandard membentuk varian individu model standar (membership).
func IndividualStandard(membershipID uint, teamID *uint) Assignment {
	return Assignment{Kind: AssignmentKindIndividual, Model: AssignmentModelStandard, Ref: membershipID, TeamID: teamID}
}

// IndividualLegacy membentuk varian individu model lama (team member flat).
func IndividualLegacy(memberID uint, teamID *uint) Assignment {
	return Assignment{Kind: AssignmentKindIndividual, Model: AssignmentModelLegacy, Ref: memberID, TeamID: teamID}
}

// AssignmentOf membaca kolom flat Cleaning menjadi varian. Kalau dua model
// terisi sekaligus (data lama yang invalid), model standar yang menang.
func AssignmentOf(c *models.Cleaning) Assignment {
	switch {
	case c.AssignedMembershipID != nil:
		return IndividualStandard(*c.AssignedMembershipID, c.TeamID)
	case c.AssignedMemberID != nil:
		return IndividualLegacy(*c.AssignedMemberID, c.TeamID)
	case c.TeamID != nil:
		return TeamOnly(*c.TeamID)
	default:
		return Unassigned()
	}
}

// Validate menolak varian yang tidak bisa dipetakan balik ke skema.
func (a Assignment) Validate() error {
	switch a.Kind {
	case AssignmentKindUnassigned:
		return nil
	case AssignmentKindTeamOnly:
		if a.TeamID == nil {
			return apperr.Validation("team assignment requires a team id")
		}
		return nil
	case AssignmentKindIndividual:
		if a.Ref == 0 {
			return apperr.Validation("individual assignment requires a member reference")
		}
		if a.Model != AssignmentModelStandard && a.Model != AssignmentModelLegacy {
			return apperr.Validation("individual assignment requires a known model")
		}
		return nil
	default:
		return apperr.Validation("unknown assignment kind")
	}
}

// IsIndividual true kalau sudah ada individu yang menerima.
func (a Assignment) IsIndividual() bool {
	return a.Kind == AssignmentKindIndividual
}

// columns memetakan varian ke satu map kolom yang ditulis dalam SATU update:
// model yang dipilih terisi, model lainnya selalu di-null-kan supaya tidak
// ada pointer lintas-model yang basi.
func (a Assignment) columns() map[string]interface{} {
	cols := map[string]interface{}{
		"team_id":                a.TeamID,
		"assigned_membership_id": nil,
		"assigned_member_id":     nil,
	}
	if a.Kind == AssignmentKindIndividual {
		if a.Model == AssignmentModelStandard {
			cols["assigned_membership_id"] = a.Ref
		} else {
			cols["assigned_member_id"] = a.Ref
		}
	}
	return cols
}
