package models

import "time"

// Appointment stores only the start instant. The end is derived from the
// service duration and must be recomputed with the Service association
// loaded; it is intentionally not a column.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"not null;index" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// nil means unassigned: the conflict rules apply once a cosmetologist
	// is designated.
	CosmetologistID *uint `gorm:"index" json:"cosmetologist_id"`
	Cosmetologist   *User `gorm:"foreignKey:CosmetologistID" json:"cosmetologist,omitempty"`

	StartDateTime time.Time `gorm:"not null;index" json:"start_date_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
