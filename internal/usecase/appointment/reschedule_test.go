package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PawshSuite/groom-scheduler/internal/httperr"
)

func TestRescheduleSingleOccurrence(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	ap := seedSingle(t, repo)

	uc := NewRescheduleAppointment(repo, testDispatcher(t))

	newStart := ap.StartTime.Add(3 * time.Hour)
	got, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		ShopID:        1,
		GroomerID:     7,
		AppointmentID: ap.ID,
		NewStart:      newStart,
	})
	require.NoError(t, err)

	assert.True(t, got.StartTime.Equal(newStart))
	assert.True(t, got.EndTime.Equal(newStart.Add(time.Duration(ap.TotalDurationMin)*time.Minute)))
}

func TestRescheduleRecurringRequiresChoice(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	first := seedSeries(t, repo)

	uc := NewRescheduleAppointment(repo, testDispatcher(t))

	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		ShopID:        1,
		GroomerID:     7,
		AppointmentID: first.ID,
		NewStart:      first.StartTime.Add(time.Hour),
	})
	assert.True(t, httperr.IsBusiness(err, "series_choice_required"))
}

// Reagendar a série aplica o MESMO delta em cada ocorrência aberta:
// cada uma mantém o próprio dia, só o horário desloca.
func TestRescheduleSeriesShiftsEveryOpenOccurrence(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	first := seedSeries(t, repo)

	before, err := repo.ListSeries(context.Background(), 1, *first.RecurringID)
	require.NoError(t, err)
	require.Len(t, before, 5)

	uc := NewRescheduleAppointment(repo, testDispatcher(t))

	delta := 90 * time.Minute
	_, err = uc.Execute(context.Background(), RescheduleAppointmentInput{
		ShopID:        1,
		GroomerID:     7,
		AppointmentID: first.ID,
		NewStart:      first.StartTime.Add(delta),
		UpdateSeries:  boolPtr(true),
	})
	require.NoError(t, err)

	// as 5 ocorrências passaram pelo update
	assert.Len(t, repo.updatedIDs, 5)

	after, err := repo.ListSeries(context.Background(), 1, *first.RecurringID)
	require.NoError(t, err)
	require.Len(t, after, 5)

	for i := range after {
		assert.True(t, after[i].StartTime.Equal(before[i].StartTime.Add(delta)))
		assert.True(t, after[i].EndTime.Equal(before[i].EndTime.Add(delta)))
	}
}

func TestRescheduleSeriesSkipsClosedOccurrences(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	first := seedSeries(t, repo)

	series, err := repo.ListSeries(context.Background(), 1, *first.RecurringID)
	require.NoError(t, err)

	// marca a segunda ocorrência como concluída
	done := series[1]
	done.Status = "completed"
	repo.appointments[done.ID] = done
	repo.updatedIDs = nil

	uc := NewRescheduleAppointment(repo, testDispatcher(t))

	_, err = uc.Execute(context.Background(), RescheduleAppointmentInput{
		ShopID:        1,
		GroomerID:     7,
		AppointmentID: first.ID,
		NewStart:      first.StartTime.Add(time.Hour),
		UpdateSeries:  boolPtr(true),
	})
	require.NoError(t, err)

	assert.Len(t, repo.updatedIDs, 4)

	got := repo.appointments[done.ID]
	assert.True(t, got.StartTime.Equal(done.StartTime), "completed occurrence must not move")
}

func TestRescheduleRejectsClosedAppointment(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	ap := seedSingle(t, repo)

	closed := repo.appointments[ap.ID]
	closed.Status = "cancelled"
	repo.appointments[ap.ID] = closed

	uc := NewRescheduleAppointment(repo, testDispatcher(t))

	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		ShopID:        1,
		GroomerID:     7,
		AppointmentID: ap.ID,
		NewStart:      ap.StartTime.Add(time.Hour),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()

	uc := NewRescheduleAppointment(repo, testDispatcher(t))

	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		ShopID:        1,
		GroomerID:     7,
		AppointmentID: 404,
		NewStart:      time.Now(),
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
