package services

import (
	"time"

	"github.com/yeremiapane/hoststay-app/models"
)

// Level adalah klasifikasi kanonik 0-5 sejauh mana tanggung jawab sebuah
// cleaning sudah ter-resolve.
type Level int

const (
	LevelNoContext        Level = 0 // tidak ada team, tidak ada assignee, tidak ada team tersedia
	LevelContextAvailable Level = 1 // ada team tersedia tapi belum dipilih
	LevelTeamAssigned     Level = 2 // team sudah dipilih, belum ada individu
	LevelAccepted         Level = 3 // individu sudah menerima
	LevelExecuting        Level = 4 // in_progress dengan individu
	LevelCompleted        Level = 5
)

func (l Level) String() string {
	switch l {
	case LevelCompleted:
		return "completed"
	case LevelExecuting:
		return "executing"
	case LevelAccepted:
		return "accepted"
	case LevelTeamAssigned:
		return "team_assigned"
	case LevelContextAvailable:
		return "context_available"
	default:
		return "no_context"
	}
}

// LevelInput adalah seluruh fakta yang dibutuhkan klasifikasi. Tidak ada
// I/O di sini; HasAvailableTeams selalu disuplai caller dari snapshot
// eligibility.
type LevelInput struct {
	Status               string
	TeamID               *uint
	AssignedMembershipID *uint
	AssignedMemberID     *uint
	StartedAt            *time.Time
	CompletedAt          *time.Time
	HasAvailableTeams    bool
}

// LevelInputOf membangun input klasifikasi dari record cleaning.
func LevelInputOf(c *models.Cleaning, hasAvailableTeams bool) LevelInput {
	return LevelInput{
		Status:               c.Status,
		TeamID:               c.TeamID,
		AssignedMembershipID: c.AssignedMembershipID,
		AssignedMemberID:     c.AssignedMemberID,
		StartedAt:            c.StartedAt,
		CompletedAt:          c.CompletedAt,
		HasAvailableTeams:    hasAvailableTeams,
	}
}

// ClassifyAssignment memetakan fakta assignment ke satu level. Fungsi murni,
// total, dievaluasi sebagai decision list berurut: match pertama menang.
func ClassifyAssignment(in LevelInput) Level {
	hasIndividual := in.AssignedMembershipID != nil || in.AssignedMemberID != nil

	switch {
	case in.Status == models.CleaningStatusCompleted:
		return LevelCompleted
	case in.Status == models.CleaningStatusInProgress && hasIndividual:
		return LevelExecuting
	case hasIndividual && in.Status != models.CleaningStatusInProgress:
		return LevelAccepted
	case in.TeamID != nil:
		return LevelTeamAssigned
	case in.HasAvailableTeams:
		return LevelContextAvailable
	default:
		return LevelNoContext
	}
}
