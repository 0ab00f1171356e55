package appointment

import (
	"context"
	"time"

	"github.com/PawshSuite/groom-scheduler/internal/models"
)

type Repository interface {
	// -------- Shop --------
	GetShopByID(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		shopID uint,
		serviceID uint,
	) (*models.GroomService, error)

	GetItem(
		ctx context.Context,
		shopID uint,
		itemID uint,
	) (*models.Item, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		shopID uint,
		clientID uint,
	) (*models.Client, error)

	// -------- Appointment (create / read) --------
	CreateAppointments(
		ctx context.Context,
		aps []*models.Appointment,
	) error

	GetAppointmentForGroomer(
		ctx context.Context,
		appointmentID uint,
		groomerID uint,
	) (*models.Appointment, error)

	// -------- Appointment (mutation) --------
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		appointmentID uint,
	) error

	// -------- Series --------
	ListSeries(
		ctx context.Context,
		shopID uint,
		recurringID string,
	) ([]models.Appointment, error)

	DeleteSeries(
		ctx context.Context,
		shopID uint,
		recurringID string,
	) error

	// -------- Calendar window --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		groomerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		groomerID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListOpenAppointmentsForDay(
		ctx context.Context,
		groomerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Invoice --------
	CreateInvoice(
		ctx context.Context,
		inv *models.Invoice,
	) error
}
