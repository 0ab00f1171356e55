package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, MinZoom, ClampZoom(0.1))
	assert.Equal(t, MinZoom, ClampZoom(-2))
	assert.Equal(t, MaxZoom, ClampZoom(10))
	assert.Equal(t, 1.0, ClampZoom(1.0))
	assert.Equal(t, 2.5, ClampZoom(2.5))
}

func TestDaySlots(t *testing.T) {
	slots := DaySlots(1.0)
	require.Len(t, slots, 96)

	assert.Equal(t, 0, slots[0].Hour)
	assert.Equal(t, 0, slots[0].Minute)
	assert.Equal(t, 0.0, slots[0].Top)

	// slot 41 = 10:15
	assert.Equal(t, 10, slots[41].Hour)
	assert.Equal(t, 15, slots[41].Minute)
	assert.Equal(t, 41*SlotHeight, slots[41].Top)

	assert.Equal(t, 23, slots[95].Hour)
	assert.Equal(t, 45, slots[95].Minute)
}

func TestDaySlotsZoomScalesOffsets(t *testing.T) {
	base := DaySlots(1.0)
	zoomed := DaySlots(2.0)

	require.Len(t, zoomed, len(base))
	for i := range base {
		assert.InDelta(t, base[i].Top*2, zoomed[i].Top, 1e-9)
	}
}

func TestTopForExactSlot(t *testing.T) {
	// 10:15 é o slot 41
	assert.InDelta(t, 41*SlotHeight, TopFor(at(10, 15), 1.0), 1e-9)
}

func TestTopForFractionalMinute(t *testing.T) {
	// 10:07 fica entre as marcas :00 e :15 do slot 40
	want := (40.0 + 7.0/15.0) * SlotHeight
	assert.InDelta(t, want, TopFor(at(10, 7), 1.0), 1e-6)

	// com zoom a posição escala linearmente
	assert.InDelta(t, want*2, TopFor(at(10, 7), 2.0), 1e-6)
	assert.InDelta(t, want*0.5, TopFor(at(10, 7), 0.5), 1e-6)
}

func TestTopForZoomOutOfRangeIsClamped(t *testing.T) {
	assert.InDelta(t, TopFor(at(9, 0), MaxZoom), TopFor(at(9, 0), 50), 1e-9)
	assert.InDelta(t, TopFor(at(9, 0), MinZoom), TopFor(at(9, 0), 0), 1e-9)
}

func TestHeightFor(t *testing.T) {
	// 60 minutos = 4 slots
	assert.InDelta(t, 4*SlotHeight, HeightFor(60, 1.0), 1e-9)

	// serviço curto nunca desenha abaixo do piso
	assert.Equal(t, MinEventHeight, HeightFor(5, 1.0))
	assert.Equal(t, MinEventHeight, HeightFor(0, 1.0))

	// o piso vale depois do zoom: 10min * 0.5 = 6.66px -> 18px
	assert.Equal(t, MinEventHeight, HeightFor(10, 0.5))
}

func TestNowMarkerSameDay(t *testing.T) {
	now := at(10, 7)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	top, ok := NowMarker(now, day, 1.0)
	require.True(t, ok)
	assert.InDelta(t, TopFor(now, 1.0), top, 1e-9)
}

func TestNowMarkerOtherDay(t *testing.T) {
	now := at(10, 7)
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	_, ok := NowMarker(now, day, 1.0)
	assert.False(t, ok)
}
