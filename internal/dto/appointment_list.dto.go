package dto

import "time"

type AppointmentListDTO struct {
	ID               uint      `json:"id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	ClientName       string    `json:"client_name"`
	PetNames         []string  `json:"pet_names"`
	TotalDurationMin int       `json:"total_duration_min"`
	TotalPrice       float64   `json:"total_price"`
	IsRecurring      bool      `json:"is_recurring"`
	RecurringID      *string   `json:"recurring_id,omitempty"`
}
