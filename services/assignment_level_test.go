package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/hoststay-app/models"
)

func uintPtr(v uint) *uint { return &v }

func TestClassifyAssignment(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		in   LevelInput
		want Level
	}{
		{
			name: "completed always wins",
			in: LevelInput{
				Status:               models.CleaningStatusCompleted,
				TeamID:               uintPtr(1),
				AssignedMembershipID: uintPtr(2),
				CompletedAt:          &now,
			},
			want: LevelCompleted,
		},
		{
			name: "completed even without any assignment",
			in:   LevelInput{Status: models.CleaningStatusCompleted},
			want: LevelCompleted,
		},
		{
			name: "in progress with standard assignee is executing",
			in: LevelInput{
				Status:               models.CleaningStatusInProgress,
				AssignedMembershipID: uintPtr(7),
				StartedAt:            &now,
			},
			want: LevelExecuting,
		},
		{
			name: "in progress with legacy assignee is executing",
			in: LevelInput{
				Status:           models.CleaningStatusInProgress,
				AssignedMemberID: uintPtr(3),
			},
			want: LevelExecuting,
		},
		{
			name: "pending with standard assignee is accepted",
			in: LevelInput{
				Status:               models.CleaningStatusPending,
				AssignedMembershipID: uintPtr(7),
			},
			want: LevelAccepted,
		},
		{
			name: "pending with legacy assignee is accepted",
			in: LevelInput{
				Status:           models.CleaningStatusPending,
				AssignedMemberID: uintPtr(9),
				TeamID:           uintPtr(1),
			},
			want: LevelAccepted,
		},
		{
			name: "team only is team assigned",
			in: LevelInput{
				Status: models.CleaningStatusPending,
				TeamID: uintPtr(1),
			},
			want: LevelTeamAssigned,
		},
		{
			name: "in progress without individual stays at team level",
			in: LevelInput{
				Status:    models.CleaningStatusInProgress,
				TeamID:    uintPtr(1),
				StartedAt: &now,
			},
			want: LevelTeamAssigned,
		},
		{
			name: "in progress without anything but available teams",
			in: LevelInput{
				Status:            models.CleaningStatusInProgress,
				HasAvailableTeams: true,
			},
			want: LevelContextAvailable,
		},
		{
			name: "teams available but none chosen",
			in: LevelInput{
				Status:            models.CleaningStatusPending,
				HasAvailableTeams: true,
			},
			want: LevelContextAvailable,
		},
		{
			name: "no executor context at all",
			in:   LevelInput{Status: models.CleaningStatusPending},
			want: LevelNoContext,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAssignment(tt.in))
		})
	}
}

// Level selalu tepat satu nilai 0..5 dan deterministik untuk input sama.
func TestClassifyAssignmentTotalAndDeterministic(t *testing.T) {
	statuses := []string{
		models.CleaningStatusPending,
		models.CleaningStatusInProgress,
		models.CleaningStatusCompleted,
		models.CleaningStatusCancelled,
		"", "bogus",
	}
	ids := []*uint{nil, uintPtr(1)}
	bools := []bool{false, true}

	for _, status := range statuses {
		for _, teamID := range ids {
			for _, membershipID := range ids {
				for _, memberID := range ids {
					for _, hasTeams := range bools {
						in := LevelInput{
							Status:               status,
							TeamID:               teamID,
							AssignedMembershipID: membershipID,
							AssignedMemberID:     memberID,
							HasAvailableTeams:    hasTeams,
						}
						got := ClassifyAssignment(in)
						assert.GreaterOrEqual(t, int(got), 0)
						assert.LessOrEqual(t, int(got), 5)
						assert.Equal(t, got, ClassifyAssignment(in))
					}
				}
			}
		}
	}
}

func TestClassifyAssignmentLevelFiveIffCompleted(t *testing.T) {
	in := LevelInput{Status: models.CleaningStatusCompleted}
	assert.Equal(t, LevelCompleted, ClassifyAssignment(in))

	for _, status := range []string{
		models.CleaningStatusPending,
		models.CleaningStatusInProgress,
		models.CleaningStatusCancelled,
	} {
		in := LevelInput{
			Status:               status,
			TeamID:               uintPtr(1),
			AssignedMembershipID: uintPtr(1),
			HasAvailableTeams:    true,
		}
		assert.NotEqual(t, LevelCompleted, ClassifyAssignment(in), "status=%s", status)
	}
}

// In progress tanpa individu tidak pernah 3/4/5.
func TestClassifyAssignmentInProgressWithoutIndividual(t *testing.T) {
	for _, in := range []LevelInput{
		{Status: models.CleaningStatusInProgress, TeamID: uintPtr(4)},
		{Status: models.CleaningStatusInProgress, HasAvailableTeams: true},
		{Status: models.CleaningStatusInProgress},
	} {
		got := ClassifyAssignment(in)
		assert.LessOrEqual(t, got, LevelTeamAssigned)
	}
}
