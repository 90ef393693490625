package models

import "time"

const (
	CleaningStatusPending    = "pending"
	CleaningStatusInProgress = "in_progress"
	CleaningStatusCompleted  = "completed"
	CleaningStatusCancelled  = "cancelled"
)

// Attention reason codes yang dicache di kolom attention_reason.
const (
	ReasonNoTeamConfigured     = "no_team_configured"
	ReasonNoAvailableMember    = "no_available_member"
	ReasonAssignedNotAvailable = "cleaning_assigned_not_available"
)

type Cleaning struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Ref         string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"ref"`
	TenantID    uint       `gorm:"not null;index:idx_cleaning_tenant" json:"tenant_id"`
	PropertyID  uint       `gorm:"not null;index" json:"property_id"`
	Property    Property   `gorm:"foreignKey:PropertyID" json:"-"`
	ScheduledAt time.Time  `gorm:"not null" json:"scheduled_at"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes"`

	ReservationID *uint        `gorm:"index" json:"reservation_id,omitempty"`
	Reservation   *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`

	// Tiga slot assignment yang hidup berdampingan. Maksimal satu model
	// individu terisi; invariannya dijaga di layer service (Assignment).
	TeamID               *uint `gorm:"index" json:"team_id,omitempty"`
	AssignedMembershipID *uint `gorm:"index" json:"assigned_membership_id,omitempty"`
	AssignedMemberID     *uint `gorm:"index" json:"assigned_member_id,omitempty"`

	// Cache untuk listing/filter; sumber kebenaran tetap hasil rekomputasi.
	NeedsAttention  bool    `gorm:"not null;default:false;index" json:"needs_attention"`
	AttentionReason *string `gorm:"type:varchar(50)" json:"attention_reason,omitempty"`

	// Snapshot nama property saat dibuat, untuk tampilan historis.
	PropertyName string `gorm:"type:varchar(255)" json:"property_name"`
	PropertyCity string `gorm:"type:varchar(100)" json:"property_city"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	AssigneeStatusAssigned = "assigned"
	AssigneeStatusDeclined = "declined"
)

// CleaningAssignee mencatat riwayat assignee (audit / kompatibilitas model
// lama). Siapa yang bertanggung jawab sekarang dibaca dari kolom assignment
// di Cleaning, bukan dari tabel ini.
type CleaningAssignee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CleaningID   uint      `gorm:"not null;index" json:"cleaning_id"`
	Cleaning     Cleaning  `gorm:"foreignKey:CleaningID" json:"-"`
	MembershipID *uint     `gorm:"index" json:"membership_id,omitempty"`
	MemberID     *uint     `gorm:"index" json:"member_id,omitempty"`
	Status       string    `gorm:"type:varchar(20);not null;default:'assigned'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
