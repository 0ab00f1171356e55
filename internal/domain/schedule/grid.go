package schedule

import "time"

// ===============================
// Time Grid
// ===============================

const (
	SlotMinutes = 15
	SlotsPerDay = 24 * 60 / SlotMinutes // 96

	// Altura base de um slot em px, antes do zoom.
	SlotHeight = 20.0

	// Altura mínima de um card, para serviços muito curtos.
	MinEventHeight = 18.0

	MinZoom = 0.5
	MaxZoom = 3.0
)

type Slot struct {
	Index  int     `json:"index"`
	Hour   int     `json:"hour"`
	Minute int     `json:"minute"`
	Top    float64 `json:"top"`
}

// ClampZoom limita o fator de zoom do gesto de pinça.
// O zoom escala a geometria vertical; nunca muda a contagem de slots.
func ClampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// DaySlots gera os 96 slots do dia com offset vertical já aplicado.
func DaySlots(zoom float64) []Slot {
	zoom = ClampZoom(zoom)

	slots := make([]Slot, 0, SlotsPerDay)
	for i := 0; i < SlotsPerDay; i++ {
		slots = append(slots, Slot{
			Index:  i,
			Hour:   (i * SlotMinutes) / 60,
			Minute: (i * SlotMinutes) % 60,
			Top:    float64(i) * SlotHeight * zoom,
		})
	}

	return slots
}

// TopFor posiciona um horário no grid. Minutos fora da grade de 15 em 15
// viram fração dentro do slot: 10:07 desenha entre as marcas :00 e :15.
func TopFor(t time.Time, zoom float64) float64 {
	zoom = ClampZoom(zoom)

	slotIndex := t.Hour()*(60/SlotMinutes) + t.Minute()/SlotMinutes
	fraction := float64(t.Minute()%SlotMinutes) / float64(SlotMinutes)

	return (float64(slotIndex) + fraction) * SlotHeight * zoom
}

// HeightFor converte duração em altura, com piso de MinEventHeight.
func HeightFor(durationMin int, zoom float64) float64 {
	zoom = ClampZoom(zoom)

	h := float64(durationMin) / float64(SlotMinutes) * SlotHeight * zoom
	if h < MinEventHeight {
		return MinEventHeight
	}
	return h
}

// NowMarker devolve a posição da linha de "agora". Só existe quando o dia
// renderizado é o dia corrente no timezone do shop.
func NowMarker(now time.Time, day time.Time, zoom float64) (float64, bool) {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := day.In(now.Location()).Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return 0, false
	}

	return TopFor(now, zoom), true
}
