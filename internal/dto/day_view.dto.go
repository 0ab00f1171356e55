package dto

import "github.com/PawshSuite/groom-scheduler/internal/domain/schedule"

// DayViewDTO é a coluna do dia pronta para renderizar: slots, cards
// posicionados (sem cancelados/no-show) e a listagem completa do dia.
type DayViewDTO struct {
	Date string  `json:"date"`
	Zoom float64 `json:"zoom"`

	Slots      []schedule.Slot      `json:"slots"`
	Placements []schedule.Placement `json:"placements"`

	// Posição da linha de "agora"; nil fora do dia corrente.
	NowMarker *float64 `json:"now_marker,omitempty"`

	// Histórico do dia, cancelados e no-show inclusos.
	Appointments []AppointmentListDTO `json:"appointments"`
}
