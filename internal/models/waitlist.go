package models

import "time"

type WaitlistEntry struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `json:"shop_id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	PetName   string `gorm:"size:100" json:"pet_name"`
	ServiceID *uint  `json:"service_id"`

	PreferredFrom *time.Time `json:"preferred_from"`
	PreferredTo   *time.Time `json:"preferred_to"`

	Notes  string `gorm:"size:500" json:"notes"`
	Status string `gorm:"size:20;default:'open'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
