package models

import "time"

const (
	MembershipRoleCleaner    = "cleaner"
	MembershipRoleTeamLeader = "team_leader"

	MembershipStatusActive   = "active"
	MembershipStatusInactive = "inactive"
)

type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"not null;index" json:"tenant_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PropertyTeam adalah tabel link standar property -> team.
type PropertyTeam struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"not null;uniqueIndex:idx_property_team" json:"property_id"`
	TeamID     uint      `gorm:"not null;uniqueIndex:idx_property_team" json:"team_id"`
	Property   Property  `gorm:"foreignKey:PropertyID" json:"-"`
	Team       Team      `gorm:"foreignKey:TeamID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// LegacyPropertyTeam adalah tabel link lama yang masih dibaca
// di semua perhitungan eligibility (artefak migrasi).
type LegacyPropertyTeam struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	TeamID     uint      `gorm:"not null;index" json:"team_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (LegacyPropertyTeam) TableName() string {
	return "legacy_property_teams"
}

// TeamMembership adalah model keanggotaan standar (dengan role).
type TeamMembership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeamID    uint      `gorm:"not null;uniqueIndex:idx_team_user" json:"team_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_team_user" json:"user_id"`
	Role      string    `gorm:"type:varchar(20);not null;default:'cleaner'" json:"role"`
	Status    string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Team      Team      `gorm:"foreignKey:TeamID" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamMember adalah model keanggotaan lama (flat, tanpa role).
// Masih hidup berdampingan dengan TeamMembership.
type TeamMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeamID    uint      `gorm:"not null;index" json:"team_id"`
	TenantID  uint      `gorm:"not null;index" json:"tenant_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
