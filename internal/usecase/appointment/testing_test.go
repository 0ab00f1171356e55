package appointment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/PawshSuite/groom-scheduler/internal/audit"
	domain "github.com/PawshSuite/groom-scheduler/internal/domain/appointment"
	"github.com/PawshSuite/groom-scheduler/internal/models"
)

// ===============================
// In-memory repository double
// ===============================

type fakeRepo struct {
	shop models.Shop

	clients  map[uint]models.Client
	services map[uint]models.GroomService
	items    map[uint]models.Item

	appointments map[uint]models.Appointment
	nextID       uint

	workingHours map[int]models.WorkingHours
	invoices     []*models.Invoice

	// IDs na ordem em que UpdateAppointment foi chamado.
	updatedIDs []uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shop: models.Shop{
			ID:       1,
			Name:     "Pawsh Club",
			Slug:     "pawsh-club",
			Timezone: "America/New_York",
		},
		clients:      map[uint]models.Client{},
		services:     map[uint]models.GroomService{},
		items:        map[uint]models.Item{},
		appointments: map[uint]models.Appointment{},
		workingHours: map[int]models.WorkingHours{},
		nextID:       1,
	}
}

func (f *fakeRepo) GetShopByID(_ context.Context, id uint) (*models.Shop, error) {
	if id != f.shop.ID {
		return nil, errors.New("shop not found")
	}
	shop := f.shop
	return &shop, nil
}

func (f *fakeRepo) GetService(_ context.Context, shopID, serviceID uint) (*models.GroomService, error) {
	svc, ok := f.services[serviceID]
	if !ok || svc.ShopID != shopID {
		return nil, errors.New("service not found")
	}
	return &svc, nil
}

func (f *fakeRepo) GetItem(_ context.Context, shopID, itemID uint) (*models.Item, error) {
	item, ok := f.items[itemID]
	if !ok || item.ShopID != shopID {
		return nil, errors.New("item not found")
	}
	return &item, nil
}

func (f *fakeRepo) GetClient(_ context.Context, shopID, clientID uint) (*models.Client, error) {
	cl, ok := f.clients[clientID]
	if !ok || cl.ShopID != shopID {
		return nil, errors.New("client not found")
	}
	return &cl, nil
}

func (f *fakeRepo) CreateAppointments(_ context.Context, aps []*models.Appointment) error {
	for _, ap := range aps {
		ap.ID = f.nextID
		f.nextID++
		f.appointments[ap.ID] = *ap
	}
	return nil
}

func (f *fakeRepo) GetAppointmentForGroomer(_ context.Context, appointmentID, groomerID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok || ap.GroomerID != groomerID {
		return nil, errors.New("appointment not found")
	}
	return &ap, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := f.appointments[ap.ID]; !ok {
		return errors.New("appointment not found")
	}
	f.appointments[ap.ID] = *ap
	f.updatedIDs = append(f.updatedIDs, ap.ID)
	return nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, appointmentID uint) error {
	if _, ok := f.appointments[appointmentID]; !ok {
		return errors.New("appointment not found")
	}
	delete(f.appointments, appointmentID)
	return nil
}

func (f *fakeRepo) ListSeries(_ context.Context, shopID uint, recurringID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ShopID == shopID && ap.RecurringID != nil && *ap.RecurringID == recurringID {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (f *fakeRepo) DeleteSeries(_ context.Context, shopID uint, recurringID string) error {
	for id, ap := range f.appointments {
		if ap.ShopID == shopID && ap.RecurringID != nil && *ap.RecurringID == recurringID {
			delete(f.appointments, id)
		}
	}
	return nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, groomerID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.GroomerID != groomerID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (f *fakeRepo) GetWorkingHours(_ context.Context, _ uint, weekday int) (*models.WorkingHours, error) {
	wh, ok := f.workingHours[weekday]
	if !ok {
		return nil, errors.New("working hours not found")
	}
	return &wh, nil
}

func (f *fakeRepo) ListOpenAppointmentsForDay(_ context.Context, groomerID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.GroomerID != groomerID {
			continue
		}
		if ap.Status != "scheduled" && ap.Status != "confirmed" {
			continue
		}
		if ap.EndTime.Before(start) || ap.StartTime.After(end) {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (f *fakeRepo) CreateInvoice(_ context.Context, inv *models.Invoice) error {
	inv.ID = uint(len(f.invoices) + 1)
	f.invoices = append(f.invoices, inv)
	return nil
}

// ===============================
// Fixtures
// ===============================

func (f *fakeRepo) seedCatalog() {
	f.clients[10] = models.Client{ID: 10, ShopID: 1, Name: "Marina", Phone: "+5511999990000", Email: "marina@example.com"}

	f.services[1] = models.GroomService{ID: 1, ShopID: 1, Name: "Banho", DurationMin: 60, Price: 60, Active: true}
	f.services[2] = models.GroomService{ID: 2, ShopID: 1, Name: "Tosa", DurationMin: 30, Price: 30, Active: true}

	f.items[5] = models.Item{ID: 5, ShopID: 1, Name: "Shampoo hipoalergênico", Price: 10, Active: true}
}

func testDispatcher(t *testing.T) *audit.Dispatcher {
	t.Helper()

	dsn := fmt.Sprintf("file:audit_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))

	return audit.NewDispatcher(audit.New(db), zerolog.Nop())
}

func boolPtr(v bool) *bool {
	return &v
}
