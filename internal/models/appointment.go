package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ShopID uint `json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"shop"`

	GroomerID uint `json:"groomer_id"`
	Groomer   User `gorm:"foreignKey:GroomerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"groomer"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	// Totais derivados dos serviços selecionados; nunca digitados à mão.
	TotalDurationMin int     `json:"total_duration_min"`
	TotalPrice       float64 `json:"total_price"`

	Notes string `gorm:"size:500" json:"notes"`

	// Série recorrente: todas as ocorrências compartilham o RecurringID.
	IsRecurring    bool    `json:"is_recurring"`
	RecurringID    *string `gorm:"size:36;index" json:"recurring_id"`
	RecurringValue int     `json:"recurring_value"`
	RecurringUnit  string  `gorm:"size:10" json:"recurring_unit"`

	Pets []AppointmentPet `gorm:"constraint:OnDelete:CASCADE;" json:"pets"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	NoShowAt    *time.Time `json:"no_show_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentPet é a reserva de um pet dentro de um atendimento.
// PetID é opcional: o pet pode ainda não estar cadastrado.
type AppointmentPet struct {
	ID            uint  `gorm:"primaryKey" json:"id"`
	AppointmentID uint  `gorm:"index" json:"appointment_id"`
	PetID         *uint `json:"pet_id"`

	PetName  string `gorm:"size:100;not null" json:"pet_name"`
	Position int    `json:"position"`

	Services []AppointmentPetService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`
	Items    []AppointmentPetItem    `gorm:"constraint:OnDelete:CASCADE;" json:"items"`
}

// AppointmentPetService congela nome, duração e preço do serviço no momento
// da gravação. PriceOverridden marca preço custom por linha.
type AppointmentPetService struct {
	ID               uint `gorm:"primaryKey" json:"id"`
	AppointmentPetID uint `gorm:"index" json:"appointment_pet_id"`
	ServiceID        uint `json:"service_id"`

	ServiceName     string  `gorm:"size:100" json:"service_name"`
	DurationMin     int     `json:"duration_min"`
	Price           float64 `json:"price"`
	PriceOverridden bool    `json:"price_overridden"`
}

type AppointmentPetItem struct {
	ID               uint `gorm:"primaryKey" json:"id"`
	AppointmentPetID uint `gorm:"index" json:"appointment_pet_id"`
	ItemID           uint `json:"item_id"`

	ItemName  string  `gorm:"size:100" json:"item_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
