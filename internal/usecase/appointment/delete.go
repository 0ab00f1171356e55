package appointment

import (
	"context"

	"github.com/PawshSuite/groom-scheduler/internal/audit"
	domain "github.com/PawshSuite/groom-scheduler/internal/domain/appointment"
	"github.com/PawshSuite/groom-scheduler/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type DeleteAppointmentInput struct {
	ShopID        uint
	GroomerID     uint
	AppointmentID uint

	// Obrigatório (e explícito) quando a ocorrência é recorrente.
	DeleteSeries *bool
}

// ======================================================
// USE CASE
// ======================================================

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	in DeleteAppointmentInput,
) error {

	ap, err := uc.repo.GetAppointmentForGroomer(ctx, in.AppointmentID, in.GroomerID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if ap.IsRecurring && in.DeleteSeries == nil {
		return httperr.ErrBusiness("series_choice_required")
	}

	action := "appointment_deleted"

	if ap.IsRecurring && *in.DeleteSeries {
		if err := uc.repo.DeleteSeries(ctx, in.ShopID, *ap.RecurringID); err != nil {
			return err
		}
		action = "series_deleted"
	} else {
		if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
			return err
		}
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   &in.GroomerID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}
