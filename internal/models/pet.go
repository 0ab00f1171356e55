package models

import "time"

type Pet struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"index" json:"client_id"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Species  string  `gorm:"size:50" json:"species"`
	Breed    string  `gorm:"size:100" json:"breed"`
	WeightKg float64 `json:"weight_kg"`
	Notes    string  `gorm:"size:500" json:"notes"`
	PhotoURL string  `gorm:"size:500" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
