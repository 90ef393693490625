package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/models"
)

const (
	MemberSourceMembership = "membership"
	MemberSourceLegacy     = "legacy"
)

// EligibleMember adalah satu kandidat assignee, dengan tag Source supaya
// caller tahu model mana yang harus ditulis balik.
type EligibleMember struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	TeamID uint   `json:"team_id"`
	Source string `json:"source"` // membership | legacy
}

// EligibilitySnapshot adalah hasil resolve sekali per request, dioper ke
// bawah secara eksplisit (tidak ada call site yang query dua sumber sendiri).
type EligibilitySnapshot struct {
	TeamIDs []uint           `json:"team_ids"`
	Members []EligibleMember `json:"members"`
}

func (s *EligibilitySnapshot) HasTeams() bool {
	return len(s.TeamIDs) > 0
}

func (s *EligibilitySnapshot) MemberCount() int {
	return len(s.Members)
}

// ContainsTeam cek apakah team ada di hasil resolve untuk property ini.
func (s *EligibilitySnapshot) ContainsTeam(id uint) bool {
	for _, t := range s.TeamIDs {
		if t == id {
			return true
		}
	}
	return false
}

// ContainsMembership cek apakah membership standar masih eligible.
func (s *EligibilitySnapshot) ContainsMembership(id uint) bool {
	for _, m := range s.Members {
		if m.Source == MemberSourceMembership && m.ID == id {
			return true
		}
	}
	return false
}

// ContainsLegacyMember cek apakah member lama masih eligible.
func (s *EligibilitySnapshot) ContainsLegacyMember(id uint) bool {
	for _, m := range s.Members {
		if m.Source == MemberSourceLegacy && m.ID == id {
			return true
		}
	}
	return false
}

type EligibilityService struct {
	DB *gorm.DB
}

func NewEligibilityService(db *gorm.DB) *EligibilityService {
	return &EligibilityService{DB: db}
}

// ResolveEligible mengembalikan union dua sumber: link property->team standar
// dan link lama, lalu anggota dari TeamMembership (role=cleaner, active) dan
// TeamMember (is_active) dalam team set tersebut. Error store harus
// dipropagasi — jangan pernah dianggap "nol team available", karena itu
// memicu attention alert palsu.
func (es *EligibilityService) ResolveEligible(tenantID, propertyID uint) (*EligibilitySnapshot, error) {
	var standardIDs []uint
	if err := es.DB.Model(&models.PropertyTeam{}).
		Joins("JOIN teams ON teams.id = property_teams.team_id").
		Where("property_teams.property_id = ? AND teams.tenant_id = ?", propertyID, tenantID).
		Pluck("property_teams.team_id", &standardIDs).Error; err != nil {
		return nil, fmt.Errorf("resolve property teams: %w", err)
	}

	var legacyIDs []uint
	if err := es.DB.Model(&models.LegacyPropertyTeam{}).
		Joins("JOIN teams ON teams.id = legacy_property_teams.team_id").
		Where("legacy_property_teams.property_id = ? AND teams.tenant_id = ?", propertyID, tenantID).
		Pluck("legacy_property_teams.team_id", &legacyIDs).Error; err != nil {
		return nil, fmt.Errorf("resolve legacy property teams: %w", err)
	}

	// Union + dedup, urutan stabil (standar dulu).
	seen := make(map[uint]bool)
	teamIDs := make([]uint, 0, len(standardIDs)+len(legacyIDs))
	for _, id := range append(standardIDs, legacyIDs...) {
		if !seen[id] {
			seen[id] = true
			teamIDs = append(teamIDs, id)
		}
	}

	snapshot := &EligibilitySnapshot{TeamIDs: teamIDs}
	if len(teamIDs) == 0 {
		return snapshot, nil
	}

	type membershipRow struct {
		ID     uint
		TeamID uint
		Name   string
	}
	var memberships []membershipRow
	if err := es.DB.Model(&models.TeamMembership{}).
		Select("team_memberships.id, team_memberships.team_id, users.name").
		Joins("JOIN users ON users.id = team_memberships.user_id").
		Where("team_memberships.team_id IN ? AND team_memberships.role = ? AND team_memberships.status = ?",
			teamIDs, models.MembershipRoleCleaner, models.MembershipStatusActive).
		Scan(&memberships).Error; err != nil {
		return nil, fmt.Errorf("resolve memberships: %w", err)
	}
	for _, m := range memberships {
		snapshot.Members = append(snapshot.Members, EligibleMember{
			ID:     m.ID,
			Name:   m.Name,
			TeamID: m.TeamID,
			Source: MemberSourceMembership,
		})
	}

	var legacyMembers []models.TeamMember
	if err := es.DB.
		Where("team_id IN ? AND tenant_id = ? AND is_active = ?", teamIDs, tenantID, true).
		Find(&legacyMembers).Error; err != nil {
		return nil, fmt.Errorf("resolve legacy members: %w", err)
	}
	for _, m := range legacyMembers {
		snapshot.Members = append(snapshot.Members, EligibleMember{
			ID:     m.ID,
			Name:   m.Name,
			TeamID: m.TeamID,
			Source: MemberSourceLegacy,
		})
	}

	return snapshot, nil
}
