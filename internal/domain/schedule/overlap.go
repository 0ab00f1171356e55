package schedule

import (
	"sort"
	"time"

	"github.com/PawshSuite/groom-scheduler/internal/models"
)

// ===============================
// Overlap Grouper
// ===============================

const (
	// Deslocamento horizontal fixo entre membros de um grupo.
	OverlapOffset = 8.0

	baseZIndex = 10
)

// GroupByStart particiona os agendamentos do dia em grupos que devem ser
// desenhados lado a lado. A regra agrupa APENAS início exatamente igual:
// dois cards que se sobrepõem em duração mas começam em minutos diferentes
// ficam em grupos separados. Não "consertar" sem decisão de produto:
// o layout do calendário depende dessa garantia.
func GroupByStart(aps []models.Appointment) [][]models.Appointment {
	if len(aps) == 0 {
		return nil
	}

	sorted := make([]models.Appointment, len(aps))
	copy(sorted, aps)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartTime.Equal(sorted[j].StartTime) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	var groups [][]models.Appointment
	current := []models.Appointment{sorted[0]}

	for _, ap := range sorted[1:] {
		// Todos os membros do grupo têm o mesmo início, então comparar
		// com o primeiro equivale a "igual a pelo menos um membro".
		if ap.StartTime.Equal(current[0].StartTime) {
			current = append(current, ap)
			continue
		}

		groups = append(groups, current)
		current = []models.Appointment{ap}
	}

	groups = append(groups, current)
	return groups
}

// Placement é a geometria final de um card na coluna do dia.
type Placement struct {
	AppointmentID uint    `json:"appointment_id"`
	Start         string  `json:"start"`
	Left          float64 `json:"left"`
	Width         float64 `json:"width"`
	Top           float64 `json:"top"`
	Height        float64 `json:"height"`
	ZIndex        int     `json:"z_index"`
}

// Layout posiciona cada grupo: membro i desloca i×OverlapOffset e todos
// encolhem para caber na coluna; z-index cresce com o índice para o card
// mais recente desenhar por cima.
func Layout(groups [][]models.Appointment, columnWidth float64, zoom float64) []Placement {
	zoom = ClampZoom(zoom)

	var out []Placement
	for _, group := range groups {
		n := len(group)
		width := columnWidth - float64(n-1)*OverlapOffset
		if width < OverlapOffset {
			width = OverlapOffset
		}

		for i, ap := range group {
			out = append(out, Placement{
				AppointmentID: ap.ID,
				Start:         ap.StartTime.Format(time.RFC3339),
				Left:          float64(i) * OverlapOffset,
				Width:         width,
				Top:           TopFor(ap.StartTime, zoom),
				Height:        HeightFor(ap.TotalDurationMin, zoom),
				ZIndex:        baseZIndex + i,
			})
		}
	}

	return out
}
