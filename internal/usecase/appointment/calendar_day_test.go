package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PawshSuite/groom-scheduler/internal/domain/schedule"
	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/models"
	"github.com/PawshSuite/groom-scheduler/internal/timezone"
)

func seedDay(t *testing.T, repo *fakeRepo) (open1, open2, cancelled models.Appointment) {
	t.Helper()

	loc := timezone.Location(repo.shop.Timezone)
	at := func(hour, minute int) time.Time {
		return time.Date(2026, 3, 10, hour, minute, 0, 0, loc)
	}

	aps := []*models.Appointment{
		{ShopID: 1, GroomerID: 7, ClientID: 10, StartTime: at(9, 0), EndTime: at(10, 0), Status: "scheduled", TotalDurationMin: 60, Client: models.Client{Name: "Marina"}},
		{ShopID: 1, GroomerID: 7, ClientID: 10, StartTime: at(9, 0), EndTime: at(9, 30), Status: "confirmed", TotalDurationMin: 30, Client: models.Client{Name: "Marina"}},
		{ShopID: 1, GroomerID: 7, ClientID: 10, StartTime: at(14, 0), EndTime: at(15, 0), Status: "cancelled", TotalDurationMin: 60, Client: models.Client{Name: "Marina"}},
	}
	require.NoError(t, repo.CreateAppointments(context.Background(), aps))

	return *aps[0], *aps[1], *aps[2]
}

func TestDayViewLayout(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	open1, open2, cancelled := seedDay(t, repo)

	uc := NewDayView(repo)

	view, err := uc.Execute(context.Background(), DayViewInput{
		ShopID:    1,
		GroomerID: 7,
		Date:      "2026-03-10",
		Zoom:      1.0,
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", view.Date)
	assert.Len(t, view.Slots, schedule.SlotsPerDay)

	// cancelado fica fora do desenho...
	require.Len(t, view.Placements, 2)
	ids := []uint{view.Placements[0].AppointmentID, view.Placements[1].AppointmentID}
	assert.ElementsMatch(t, []uint{open1.ID, open2.ID}, ids)
	for _, p := range view.Placements {
		assert.NotEqual(t, cancelled.ID, p.AppointmentID)
	}

	// ...mas continua na listagem do dia
	require.Len(t, view.Appointments, 3)

	// os dois abertos começam juntos: mesmo grupo, lado a lado
	assert.Equal(t, 0.0, view.Placements[0].Left)
	assert.Equal(t, schedule.OverlapOffset, view.Placements[1].Left)
	assert.Equal(t, view.Placements[0].Width, view.Placements[1].Width)

	// dia passado: sem linha de "agora"
	assert.Nil(t, view.NowMarker)
}

func TestDayViewClampsZoom(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	seedDay(t, repo)

	uc := NewDayView(repo)

	view, err := uc.Execute(context.Background(), DayViewInput{
		ShopID:    1,
		GroomerID: 7,
		Date:      "2026-03-10",
		Zoom:      99,
	})
	require.NoError(t, err)
	assert.Equal(t, schedule.MaxZoom, view.Zoom)

	view, err = uc.Execute(context.Background(), DayViewInput{
		ShopID:    1,
		GroomerID: 7,
		Date:      "2026-03-10",
		Zoom:      0,
	})
	require.NoError(t, err)
	assert.Equal(t, schedule.MinZoom, view.Zoom)
}

func TestDayViewInvalidDate(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()

	uc := NewDayView(repo)

	_, err := uc.Execute(context.Background(), DayViewInput{
		ShopID:    1,
		GroomerID: 7,
		Date:      "10-03-2026",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestListWeekWindow(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	seedDay(t, repo)

	loc := timezone.Location(repo.shop.Timezone)

	// fora da janela de 7 dias
	outside := &models.Appointment{
		ShopID:    1,
		GroomerID: 7,
		ClientID:  10,
		StartTime: time.Date(2026, 3, 20, 9, 0, 0, 0, loc),
		EndTime:   time.Date(2026, 3, 20, 10, 0, 0, 0, loc),
		Status:    "scheduled",
	}
	require.NoError(t, repo.CreateAppointments(context.Background(), []*models.Appointment{outside}))

	uc := NewListWeek(repo)

	list, err := uc.Execute(context.Background(), 7, 1, "2026-03-09")
	require.NoError(t, err)

	// os 3 do dia 10 entram (cancelado incluso na listagem), o do dia 20 não
	assert.Len(t, list, 3)
}

func TestDayViewCoversWholeDSTDay(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()

	// 2026-11-01 em Nova York tem 25 horas (fim do horário de verão);
	// uma janela fixa de 24h cortaria a última hora do dia
	loc := timezone.Location(repo.shop.Timezone)
	late := &models.Appointment{
		ShopID:    1,
		GroomerID: 7,
		ClientID:  10,
		StartTime: time.Date(2026, 11, 1, 23, 30, 0, 0, loc),
		EndTime:   time.Date(2026, 11, 2, 0, 0, 0, 0, loc),
		Status:    "scheduled",
		Client:    models.Client{Name: "Marina"},
	}
	require.NoError(t, repo.CreateAppointments(context.Background(), []*models.Appointment{late}))

	uc := NewDayView(repo)

	view, err := uc.Execute(context.Background(), DayViewInput{
		ShopID:    1,
		GroomerID: 7,
		Date:      "2026-11-01",
		Zoom:      1.0,
	})
	require.NoError(t, err)

	require.Len(t, view.Appointments, 1)
	require.Len(t, view.Placements, 1)
	assert.Equal(t, late.ID, view.Placements[0].AppointmentID)
}
