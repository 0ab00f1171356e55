package models

import "time"

type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ShopID        uint `json:"shop_id"`
	AppointmentID uint `gorm:"uniqueIndex" json:"appointment_id"`
	ClientID      uint `json:"client_id"`

	Total       float64 `json:"total"`
	Status      string  `gorm:"size:20;default:'open'" json:"status"`
	PaymentLink string  `gorm:"size:500" json:"payment_link"`

	Lines []InvoiceLine `gorm:"constraint:OnDelete:CASCADE;" json:"lines"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InvoiceLine struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index" json:"invoice_id"`

	Description string  `gorm:"size:200" json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}
