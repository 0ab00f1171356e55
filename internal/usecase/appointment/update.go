package appointment

import (
	"context"
	"time"

	"github.com/PawshSuite/groom-scheduler/internal/audit"
	domain "github.com/PawshSuite/groom-scheduler/internal/domain/appointment"
	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateSeries é ponteiro de propósito: para ocorrência recorrente a
// escolha única-vs-série tem que ser explícita. Nil numa recorrente é
// erro bloqueante, nunca um default.
type EditAppointmentInput struct {
	ShopID        uint
	GroomerID     uint
	AppointmentID uint

	Notes          *string
	Pets           []PetBookingInput
	PriceOverrides []PriceOverride

	UpdateSeries *bool
}

// ======================================================
// USE CASE
// ======================================================

type EditAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewEditAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *EditAppointment {
	return &EditAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *EditAppointment) Execute(
	ctx context.Context,
	in EditAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForGroomer(ctx, in.AppointmentID, in.GroomerID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if ap.IsRecurring && in.UpdateSeries == nil {
		return nil, httperr.ErrBusiness("series_choice_required")
	}

	// --------------------------------------------------
	// Remonta as linhas quando os pets mudaram
	// --------------------------------------------------
	var (
		bookings      []models.AppointmentPet
		totalDuration int
		totalPrice    float64
		petsChanged   bool
	)

	if in.Pets != nil {
		if err := validateBookings(in.Pets); err != nil {
			return nil, err
		}

		bookings, totalDuration, totalPrice, err = assembleBookings(
			ctx,
			uc.repo,
			in.ShopID,
			in.Pets,
			in.PriceOverrides,
		)
		if err != nil {
			return nil, err
		}
		petsChanged = true
	}

	apply := func(target *models.Appointment) {
		if in.Notes != nil {
			target.Notes = *in.Notes
		}
		if petsChanged {
			target.Pets = cloneBookings(bookings)
			target.TotalDurationMin = totalDuration
			target.TotalPrice = totalPrice
			target.EndTime = target.StartTime.Add(time.Duration(totalDuration) * time.Minute)
		}
	}

	// --------------------------------------------------
	// Série inteira ou só esta ocorrência
	// --------------------------------------------------
	if ap.IsRecurring && *in.UpdateSeries {
		series, err := uc.repo.ListSeries(ctx, in.ShopID, *ap.RecurringID)
		if err != nil {
			return nil, err
		}

		for i := range series {
			occ := series[i]
			apply(&occ)
			if err := uc.repo.UpdateAppointment(ctx, &occ); err != nil {
				return nil, err
			}
			if occ.ID == ap.ID {
				*ap = occ
			}
		}
	} else {
		apply(ap)
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   &in.GroomerID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"series": ap.IsRecurring && in.UpdateSeries != nil && *in.UpdateSeries,
		},
	})

	return ap, nil
}
