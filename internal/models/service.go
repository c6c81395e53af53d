package models

import "time"

// Service is a bookable salon treatment. Services are never hard-deleted,
// only deactivated, since past appointments keep referencing them.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Description     string  `gorm:"size:255" json:"description"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`
	Price           float64 `gorm:"not null" json:"price"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
