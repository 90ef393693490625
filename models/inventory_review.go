package models

import "time"

const (
	ReviewStatusDraft     = "draft"
	ReviewStatusSubmitted = "submitted"
)

// InventoryReview dibuat (draft) saat cleaning dimulai dan menjadi
// read-only setelah submitted.
type InventoryReview struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Ref         string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"ref"`
	TenantID    uint       `gorm:"not null;index" json:"tenant_id"`
	CleaningID  uint       `gorm:"not null;uniqueIndex" json:"cleaning_id"`
	Cleaning    Cleaning   `gorm:"foreignKey:CleaningID" json:"-"`
	Status      string     `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
