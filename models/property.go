package models

import "time"

type Property struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"not null;index" json:"tenant_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"type:varchar(255)" json:"address"`
	City      string    `gorm:"type:varchar(100)" json:"city"`
	Timezone  string    `gorm:"type:varchar(64);default:'UTC'" json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Reservation hanya sebagai target link opsional dari cleaning.
type Reservation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   uint      `gorm:"not null;index" json:"tenant_id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	Property   Property  `gorm:"foreignKey:PropertyID" json:"-"`
	GuestName  string    `gorm:"type:varchar(255)" json:"guest_name"`
	CheckOut   time.Time `gorm:"not null" json:"check_out"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
