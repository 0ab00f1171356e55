package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PawshSuite/groom-scheduler/internal/httperr"
)

func TestCreateComputesTotalsFromSelection(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	uc := NewCreateAppointment(repo, testDispatcher(t))

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID:    1,
		GroomerID: 7,
		ClientID:  10,
		Date:      "2026-03-10",
		Time:      "10:00",
		Pets: []PetBookingInput{
			{PetName: "Thor", ServiceIDs: []uint{1, 2}},
			{PetName: "Luna", ServiceIDs: []uint{2}, Items: []ItemSelection{{ItemID: 5, Quantity: 2}}},
		},
	})
	require.NoError(t, err)

	// 60 + 30 + 30 minutos; 60 + 30 + 30 + 2x10 reais
	assert.Equal(t, 120, ap.TotalDurationMin)
	assert.Equal(t, 140.0, ap.TotalPrice)

	assert.Equal(t, "scheduled", ap.Status)
	assert.Equal(t, ap.StartTime.Add(2*time.Hour), ap.EndTime)

	require.Len(t, ap.Pets, 2)
	assert.Equal(t, "Thor", ap.Pets[0].PetName)
	assert.Equal(t, 0, ap.Pets[0].Position)
	assert.Equal(t, 1, ap.Pets[1].Position)

	// snapshot da linha congela nome/duração/preço do catálogo
	require.Len(t, ap.Pets[0].Services, 2)
	assert.Equal(t, "Banho", ap.Pets[0].Services[0].ServiceName)
	assert.Equal(t, 60, ap.Pets[0].Services[0].DurationMin)
	assert.False(t, ap.Pets[0].Services[0].PriceOverridden)
}

func TestCreatePriceOverrideKeyedByPetAndService(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	uc := NewCreateAppointment(repo, testDispatcher(t))

	// os dois pets fazem o mesmo serviço; só o segundo tem preço custom
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID:    1,
		GroomerID: 7,
		ClientID:  10,
		Date:      "2026-03-10",
		Time:      "10:00",
		Pets: []PetBookingInput{
			{PetName: "Thor", ServiceIDs: []uint{2}},
			{PetName: "Luna", ServiceIDs: []uint{2}},
		},
		PriceOverrides: []PriceOverride{
			{PetIndex: 1, ServiceID: 2, Price: 45},
		},
	})
	require.NoError(t, err)

	assert.False(t, ap.Pets[0].Services[0].PriceOverridden)
	assert.Equal(t, 30.0, ap.Pets[0].Services[0].Price)

	assert.True(t, ap.Pets[1].Services[0].PriceOverridden)
	assert.Equal(t, 45.0, ap.Pets[1].Services[0].Price)

	// override muda o preço total mas nunca a duração
	assert.Equal(t, 75.0, ap.TotalPrice)
	assert.Equal(t, 60, ap.TotalDurationMin)
}

func TestCreateValidationOrder(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	uc := NewCreateAppointment(repo, testDispatcher(t))

	// sem cliente E sem pet: cliente vem primeiro
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID:    1,
		GroomerID: 7,
	})
	assert.True(t, httperr.IsBusiness(err, "client_required"))

	// cliente ok, nenhum pet com nome
	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID:    1,
		GroomerID: 7,
		ClientID:  10,
		Pets:      []PetBookingInput{{PetName: "   "}},
	})
	assert.True(t, httperr.IsBusiness(err, "pet_required"))
}

func TestCreateUnknownClient(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	uc := NewCreateAppointment(repo, testDispatcher(t))

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID:    1,
		GroomerID: 7,
		ClientID:  999,
		Pets:      []PetBookingInput{{PetName: "Thor"}},
	})
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestCreateInvalidDate(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	uc := NewCreateAppointment(repo, testDispatcher(t))

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID:    1,
		GroomerID: 7,
		ClientID:  10,
		Date:      "10/03/2026",
		Time:      "10:00",
		Pets:      []PetBookingInput{{PetName: "Thor", ServiceIDs: []uint{1}}},
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateUnknownServiceAndItem(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	uc := NewCreateAppointment(repo, testDispatcher(t))

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID:    1,
		GroomerID: 7,
		ClientID:  10,
		Date:      "2026-03-10",
		Time:      "10:00",
		Pets:      []PetBookingInput{{PetName: "Thor", ServiceIDs: []uint{777}}},
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID:    1,
		GroomerID: 7,
		ClientID:  10,
		Date:      "2026-03-10",
		Time:      "10:00",
		Pets: []PetBookingInput{
			{PetName: "Thor", ServiceIDs: []uint{1}, Items: []ItemSelection{{ItemID: 777, Quantity: 1}}},
		},
	})
	assert.True(t, httperr.IsBusiness(err, "item_not_found"))
}

func TestCreateRecurringMaterializesSeries(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	uc := NewCreateAppointment(repo, testDispatcher(t))

	first, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID:    1,
		GroomerID: 7,
		ClientID:  10,
		Date:      "2026-03-10",
		Time:      "09:00",
		Pets:      []PetBookingInput{{PetName: "Thor", ServiceIDs: []uint{1}}},
		Recurring: &RecurringInput{Value: 1, Unit: "week"},
	})
	require.NoError(t, err)

	require.True(t, first.IsRecurring)
	require.NotNil(t, first.RecurringID)
	assert.Equal(t, 1, first.RecurringValue)
	assert.Equal(t, "week", first.RecurringUnit)

	series, err := repo.ListSeries(context.Background(), 1, *first.RecurringID)
	require.NoError(t, err)

	// semanal até um ano após a âncora: 53 ocorrências
	assert.Len(t, series, 53)

	for i, occ := range series {
		assert.Equal(t, *first.RecurringID, *occ.RecurringID)
		assert.Equal(t, first.TotalPrice, occ.TotalPrice)
		assert.Equal(t, 9, occ.StartTime.Hour(), "occurrence %d keeps wall clock", i)
		require.Len(t, occ.Pets, 1)
	}
}

func TestCreateRejectsInvalidRecurrence(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	uc := NewCreateAppointment(repo, testDispatcher(t))

	for _, rec := range []RecurringInput{
		{Value: 0, Unit: "week"},
		{Value: 366, Unit: "day"},
		{Value: 2, Unit: "fortnight"},
	} {
		_, err := uc.Execute(context.Background(), CreateAppointmentInput{
			ShopID:    1,
			GroomerID: 7,
			ClientID:  10,
			Date:      "2026-03-10",
			Time:      "09:00",
			Pets:      []PetBookingInput{{PetName: "Thor", ServiceIDs: []uint{1}}},
			Recurring: &rec,
		})
		assert.True(t, httperr.IsBusiness(err, "invalid_recurrence"))
	}

	assert.Empty(t, repo.appointments)
}

func TestCreateHonorsMinAdvance(t *testing.T) {
	repo := newFakeRepo()
	repo.seedCatalog()
	repo.shop.MinAdvanceMinutes = 120
	uc := NewCreateAppointment(repo, testDispatcher(t))

	// agendar para o passado sempre cai na antecedência mínima
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID:    1,
		GroomerID: 7,
		ClientID:  10,
		Date:      "2020-01-01",
		Time:      "10:00",
		Pets:      []PetBookingInput{{PetName: "Thor", ServiceIDs: []uint{1}}},
	})
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}
