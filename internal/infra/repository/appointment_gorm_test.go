package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/PawshSuite/groom-scheduler/internal/models"
)

func testRepo(t *testing.T) (*AppointmentGormRepository, *gorm.DB) {
	t.Helper()

	// DSN nomeado por teste: o pool do gorm reabre conexões e um
	// ":memory:" puro daria um banco novo a cada conexão.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Shop{},
		&models.User{},
		&models.Client{},
		&models.Pet{},
		&models.GroomService{},
		&models.Item{},
		&models.Appointment{},
		&models.AppointmentPet{},
		&models.AppointmentPetService{},
		&models.AppointmentPetItem{},
		&models.WorkingHours{},
		&models.Invoice{},
		&models.InvoiceLine{},
	))

	return NewAppointmentGormRepository(db), db
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&models.Shop{ID: 1, Name: "Pawsh Club", Slug: "pawsh-club", Timezone: "America/New_York"}).Error)
	require.NoError(t, db.Create(&models.Client{ID: 10, ShopID: 1, Name: "Marina"}).Error)
	require.NoError(t, db.Create(&models.GroomService{ID: 1, ShopID: 1, Name: "Banho", DurationMin: 60, Price: 60, Active: true}).Error)
	require.NoError(t, db.Create(&models.Item{ID: 5, ShopID: 1, Name: "Shampoo", Price: 10, Active: true}).Error)
}

func newAppointment(start time.Time, status string) *models.Appointment {
	return &models.Appointment{
		ShopID:           1,
		GroomerID:        7,
		ClientID:         10,
		StartTime:        start,
		EndTime:          start.Add(time.Hour),
		Status:           status,
		TotalDurationMin: 60,
		TotalPrice:       60,
		Pets: []models.AppointmentPet{
			{
				PetName: "Thor",
				Services: []models.AppointmentPetService{
					{ServiceID: 1, ServiceName: "Banho", DurationMin: 60, Price: 60},
				},
			},
		},
	}
}

func TestCatalogLookupsAreShopScoped(t *testing.T) {
	repo, db := testRepo(t)
	seed(t, db)
	ctx := context.Background()

	svc, err := repo.GetService(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Banho", svc.Name)

	_, err = repo.GetService(ctx, 2, 1)
	assert.Error(t, err)

	item, err := repo.GetItem(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "Shampoo", item.Name)

	_, err = repo.GetClient(ctx, 2, 10)
	assert.Error(t, err)
}

func TestCreateAndGetAppointmentWithAssociations(t *testing.T) {
	repo, db := testRepo(t)
	seed(t, db)
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	ap := newAppointment(start, "scheduled")
	require.NoError(t, repo.CreateAppointments(ctx, []*models.Appointment{ap}))
	require.NotZero(t, ap.ID)

	got, err := repo.GetAppointmentForGroomer(ctx, ap.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, "Marina", got.Client.Name)
	require.Len(t, got.Pets, 1)
	require.Len(t, got.Pets[0].Services, 1)
	assert.Equal(t, "Banho", got.Pets[0].Services[0].ServiceName)

	// groomer errado não enxerga
	_, err = repo.GetAppointmentForGroomer(ctx, ap.ID, 99)
	assert.Error(t, err)
}

func TestSeriesRoundTrip(t *testing.T) {
	repo, db := testRepo(t)
	seed(t, db)
	ctx := context.Background()

	seriesID := "6f1cbb1e-8fd4-4f6e-9f7a-1a2b3c4d5e6f"
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	var aps []*models.Appointment
	for i := 0; i < 3; i++ {
		ap := newAppointment(base.AddDate(0, 0, 7*i), "scheduled")
		ap.IsRecurring = true
		ap.RecurringID = &seriesID
		ap.RecurringValue = 1
		ap.RecurringUnit = "week"
		aps = append(aps, ap)
	}
	require.NoError(t, repo.CreateAppointments(ctx, aps))

	series, err := repo.ListSeries(ctx, 1, seriesID)
	require.NoError(t, err)
	require.Len(t, series, 3)

	// ordenado por início
	assert.True(t, series[0].StartTime.Before(series[1].StartTime))
	assert.True(t, series[1].StartTime.Before(series[2].StartTime))

	require.NoError(t, repo.DeleteSeries(ctx, 1, seriesID))

	series, err = repo.ListSeries(ctx, 1, seriesID)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestUpdatePersistsAssociations(t *testing.T) {
	repo, db := testRepo(t)
	seed(t, db)
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	ap := newAppointment(start, "scheduled")
	require.NoError(t, repo.CreateAppointments(ctx, []*models.Appointment{ap}))

	ap.Notes = "tosa higiênica incluída"
	ap.StartTime = start.Add(2 * time.Hour)
	ap.EndTime = ap.StartTime.Add(time.Hour)
	require.NoError(t, repo.UpdateAppointment(ctx, ap))

	got, err := repo.GetAppointmentForGroomer(ctx, ap.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "tosa higiênica incluída", got.Notes)
	assert.True(t, got.StartTime.Equal(start.Add(2*time.Hour)))
}

func TestUpdateReplacesPetLines(t *testing.T) {
	repo, db := testRepo(t)
	seed(t, db)
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	ap := newAppointment(start, "scheduled")
	require.NoError(t, repo.CreateAppointments(ctx, []*models.Appointment{ap}))

	// edição recompõe as linhas do zero, sem IDs
	ap.Pets = []models.AppointmentPet{
		{
			PetName: "Luna",
			Services: []models.AppointmentPetService{
				{ServiceID: 1, ServiceName: "Banho", DurationMin: 60, Price: 60},
			},
			Items: []models.AppointmentPetItem{
				{ItemID: 5, ItemName: "Shampoo", Quantity: 1, UnitPrice: 10},
			},
		},
	}
	require.NoError(t, repo.UpdateAppointment(ctx, ap))

	got, err := repo.GetAppointmentForGroomer(ctx, ap.ID, 7)
	require.NoError(t, err)

	// só a seleção nova sobrevive; a linha do Thor não pode ficar junto
	require.Len(t, got.Pets, 1)
	assert.Equal(t, "Luna", got.Pets[0].PetName)
	require.Len(t, got.Pets[0].Services, 1)
	require.Len(t, got.Pets[0].Items, 1)

	var petRows, serviceRows int64
	require.NoError(t, db.Model(&models.AppointmentPet{}).Where("appointment_id = ?", ap.ID).Count(&petRows).Error)
	require.NoError(t, db.Model(&models.AppointmentPetService{}).Count(&serviceRows).Error)
	assert.EqualValues(t, 1, petRows)
	assert.EqualValues(t, 1, serviceRows)

	// update sem mexer nos pets (ex.: mudança de status) preserva a linha
	got.Status = "confirmed"
	require.NoError(t, repo.UpdateAppointment(ctx, got))

	again, err := repo.GetAppointmentForGroomer(ctx, ap.ID, 7)
	require.NoError(t, err)
	require.Len(t, again.Pets, 1)
	assert.Equal(t, "Luna", again.Pets[0].PetName)
	require.Len(t, again.Pets[0].Services, 1)
}

func TestListAppointmentsForPeriodWindow(t *testing.T) {
	repo, db := testRepo(t)
	seed(t, db)
	ctx := context.Background()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	inside := newAppointment(day.Add(9*time.Hour), "scheduled")
	cancelled := newAppointment(day.Add(11*time.Hour), "cancelled")
	nextDay := newAppointment(day.Add(26*time.Hour), "scheduled")
	otherGroomer := newAppointment(day.Add(10*time.Hour), "scheduled")
	otherGroomer.GroomerID = 99

	require.NoError(t, repo.CreateAppointments(ctx, []*models.Appointment{inside, cancelled, nextDay, otherGroomer}))

	got, err := repo.ListAppointmentsForPeriod(ctx, 7, day, day.Add(24*time.Hour))
	require.NoError(t, err)

	// a janela traz todos os status do groomer; o filtro de visibilidade
	// do calendário acontece na camada de cima
	require.Len(t, got, 2)
	assert.Equal(t, inside.ID, got[0].ID)
	assert.Equal(t, cancelled.ID, got[1].ID)
}

func TestListOpenAppointmentsExcludesClosed(t *testing.T) {
	repo, db := testRepo(t)
	seed(t, db)
	ctx := context.Background()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	open := newAppointment(day.Add(9*time.Hour), "scheduled")
	confirmed := newAppointment(day.Add(10*time.Hour), "confirmed")
	done := newAppointment(day.Add(11*time.Hour), "completed")
	cancelled := newAppointment(day.Add(12*time.Hour), "cancelled")

	require.NoError(t, repo.CreateAppointments(ctx, []*models.Appointment{open, confirmed, done, cancelled}))

	got, err := repo.ListOpenAppointmentsForDay(ctx, 7, day, day.Add(24*time.Hour))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, open.ID, got[0].ID)
	assert.Equal(t, confirmed.ID, got[1].ID)
}

func TestCreateInvoiceWithLines(t *testing.T) {
	repo, db := testRepo(t)
	seed(t, db)
	ctx := context.Background()

	inv := &models.Invoice{
		ShopID:        1,
		AppointmentID: 1,
		ClientID:      10,
		Total:         80,
		Status:        "open",
		Lines: []models.InvoiceLine{
			{Description: "Thor - Banho", Quantity: 1, UnitPrice: 60, Amount: 60},
			{Description: "Shampoo", Quantity: 2, UnitPrice: 10, Amount: 20},
		},
	}
	require.NoError(t, repo.CreateInvoice(ctx, inv))
	require.NotZero(t, inv.ID)

	var lines []models.InvoiceLine
	require.NoError(t, db.Where("invoice_id = ?", inv.ID).Find(&lines).Error)
	assert.Len(t, lines, 2)
}
