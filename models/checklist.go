package models

import "time"

// ChecklistTemplateItem adalah template checklist milik property.
type ChecklistTemplateItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   uint      `gorm:"not null;index" json:"tenant_id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	Label      string    `gorm:"type:varchar(255);not null" json:"label"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CleaningChecklistItem adalah salinan template per-cleaning,
// dibuat sekali lalu hidup sendiri (snapshot).
type CleaningChecklistItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   uint      `gorm:"not null;index" json:"tenant_id"`
	CleaningID uint      `gorm:"not null;index" json:"cleaning_id"`
	Cleaning   Cleaning  `gorm:"foreignKey:CleaningID" json:"-"`
	Label      string    `gorm:"type:varchar(255);not null" json:"label"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	IsDone     bool      `gorm:"not null;default:false" json:"is_done"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
