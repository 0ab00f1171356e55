package appointment

import (
	"context"
	"time"

	"github.com/PawshSuite/groom-scheduler/internal/audit"
	domain "github.com/PawshSuite/groom-scheduler/internal/domain/appointment"
	"github.com/PawshSuite/groom-scheduler/internal/domain/reschedule"
	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RescheduleAppointmentInput struct {
	ShopID        uint
	GroomerID     uint
	AppointmentID uint

	// Instante absoluto já resolvido no timezone do shop
	// (o protocolo de drag combina dia exibido + hora/minuto soltos).
	NewStart time.Time

	UpdateSeries *bool
}

// ======================================================
// USE CASE
// ======================================================

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForGroomer(ctx, in.AppointmentID, in.GroomerID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	if ap.IsRecurring && in.UpdateSeries == nil {
		return nil, httperr.ErrBusiness("series_choice_required")
	}

	delta := in.NewStart.Sub(ap.StartTime)

	// --------------------------------------------------
	// Série: o delta da ocorrência editada desloca todas as
	// ocorrências abertas, cada uma mantendo o próprio dia.
	// --------------------------------------------------
	if ap.IsRecurring && *in.UpdateSeries {
		series, err := uc.repo.ListSeries(ctx, in.ShopID, *ap.RecurringID)
		if err != nil {
			return nil, err
		}

		for i := range series {
			occ := series[i]
			if domain.CanReschedule(domain.Status(occ.Status)) != nil {
				continue
			}

			occ.StartTime = occ.StartTime.Add(delta)
			occ.EndTime = occ.EndTime.Add(delta)

			if err := uc.repo.UpdateAppointment(ctx, &occ); err != nil {
				return nil, err
			}
			if occ.ID == ap.ID {
				*ap = occ
			}
		}
	} else {
		ap.StartTime = in.NewStart
		ap.EndTime = in.NewStart.Add(time.Duration(ap.TotalDurationMin) * time.Minute)

		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   &in.GroomerID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"new_start": in.NewStart,
			"series":    ap.IsRecurring && in.UpdateSeries != nil && *in.UpdateSeries,
		},
	})

	return ap, nil
}

// Reschedule satisfaz o Updater do protocolo de drag-and-drop.
func (uc *RescheduleAppointment) Reschedule(
	ctx context.Context,
	req reschedule.UpdateRequest,
) error {

	series := req.UpdateSeries

	_, err := uc.Execute(ctx, RescheduleAppointmentInput{
		ShopID:        req.ShopID,
		GroomerID:     req.GroomerID,
		AppointmentID: req.AppointmentID,
		NewStart:      req.NewStart,
		UpdateSeries:  &series,
	})
	return err
}

// Compile-time check
var _ reschedule.Updater = (*RescheduleAppointment)(nil)
