package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/PawshSuite/groom-scheduler/internal/domain/appointment"
	"github.com/PawshSuite/groom-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetShopByID(
	ctx context.Context,
	id uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	shopID uint,
	serviceID uint,
) (*models.GroomService, error) {

	var svc models.GroomService
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", serviceID, shopID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetItem(
	ctx context.Context,
	shopID uint,
	itemID uint,
) (*models.Item, error) {

	var item models.Item
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", itemID, shopID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	shopID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", clientID, shopID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointments(
	ctx context.Context,
	aps []*models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ap := range aps {
			if err := tx.Create(ap).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AppointmentGormRepository) GetAppointmentForGroomer(
	ctx context.Context,
	appointmentID uint,
	groomerID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Pets").
		Preload("Pets.Services").
		Preload("Pets.Items").
		Where("id = ? AND groomer_id = ?", appointmentID, groomerID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

// UpdateAppointment substitui o agregado inteiro: as linhas de pet são
// recompostas a cada edição, então as antigas saem antes do save para que
// o que fica persistido seja exatamente a seleção recalculada.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var petIDs []uint
		if err := tx.Model(&models.AppointmentPet{}).
			Where("appointment_id = ?", ap.ID).
			Pluck("id", &petIDs).Error; err != nil {
			return err
		}

		if len(petIDs) > 0 {
			if err := tx.Where("appointment_pet_id IN ?", petIDs).
				Delete(&models.AppointmentPetService{}).Error; err != nil {
				return err
			}
			if err := tx.Where("appointment_pet_id IN ?", petIDs).
				Delete(&models.AppointmentPetItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("appointment_id = ?", ap.ID).
				Delete(&models.AppointmentPet{}).Error; err != nil {
				return err
			}
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(ap).Error
	})
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, appointmentID).Error
}

// --------------------------------------------------
// Series
// --------------------------------------------------

func (r *AppointmentGormRepository) ListSeries(
	ctx context.Context,
	shopID uint,
	recurringID string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Pets").
		Preload("Pets.Services").
		Preload("Pets.Items").
		Where("shop_id = ? AND recurring_id = ?", shopID, recurringID).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) DeleteSeries(
	ctx context.Context,
	shopID uint,
	recurringID string,
) error {
	return r.db.WithContext(ctx).
		Where("shop_id = ? AND recurring_id = ?", shopID, recurringID).
		Delete(&models.Appointment{}).Error
}

// --------------------------------------------------
// Calendar window
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	groomerID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Pets").
		Preload("Pets.Services").
		Preload("Pets.Items").
		Where(
			"groomer_id = ? AND start_time >= ? AND start_time < ?",
			groomerID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&aps).Error

	if err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	groomerID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("groomer_id = ? AND weekday = ?", groomerID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *AppointmentGormRepository) ListOpenAppointmentsForDay(
	ctx context.Context,
	groomerID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where(
			"groomer_id = ? AND status IN ('scheduled', 'confirmed') AND start_time >= ? AND start_time < ?",
			groomerID, start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Invoice
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateInvoice(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
