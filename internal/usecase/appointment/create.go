package appointment

import (
	"context"
	"time"

	"github.com/PawshSuite/groom-scheduler/internal/audit"
	domain "github.com/PawshSuite/groom-scheduler/internal/domain/appointment"
	"github.com/PawshSuite/groom-scheduler/internal/domain/recurrence"
	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/models"
	"github.com/PawshSuite/groom-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ShopID    uint
	GroomerID uint

	ClientID uint

	Date  string
	Time  string
	Notes string

	Pets           []PetBookingInput
	PriceOverrides []PriceOverride

	Recurring *RecurringInput
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Shop
	// --------------------------------------------------
	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Cliente obrigatório
	// --------------------------------------------------
	if in.ClientID == 0 {
		return nil, httperr.ErrBusiness("client_required")
	}

	client, err := uc.repo.GetClient(ctx, in.ShopID, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	// --------------------------------------------------
	// 3️⃣ Pelo menos um pet com nome
	// --------------------------------------------------
	if err := validateBookings(in.Pets); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Data / hora no timezone do shop
	// --------------------------------------------------
	start, err := timezone.ParseWallClock(in.Date, in.Time, shop.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 5️⃣ Antecedência mínima (quando configurada)
	// --------------------------------------------------
	if shop.MinAdvanceMinutes > 0 {
		now := timezone.NowIn(shop.Timezone)
		if start.Before(now.Add(time.Duration(shop.MinAdvanceMinutes) * time.Minute)) {
			return nil, httperr.ErrBusiness("too_soon")
		}
	}

	// --------------------------------------------------
	// 6️⃣ Montagem das linhas + totais derivados
	// --------------------------------------------------
	bookings, totalDuration, totalPrice, err := assembleBookings(
		ctx,
		uc.repo,
		in.ShopID,
		in.Pets,
		in.PriceOverrides,
	)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(totalDuration) * time.Minute)

	// --------------------------------------------------
	// 7️⃣ Recorrência: valida o intervalo e materializa a série
	// --------------------------------------------------
	starts := []time.Time{start}

	var (
		seriesID *string
		interval recurrence.Interval
	)

	if in.Recurring != nil {
		interval = recurrence.Interval{
			Value: in.Recurring.Value,
			Unit:  recurrence.Unit(in.Recurring.Unit),
		}
		if err := interval.Validate(); err != nil {
			return nil, err
		}

		id := recurrence.NewSeriesID()
		seriesID = &id

		starts = interval.Occurrences(start, start.AddDate(1, 0, 0))
	}

	// --------------------------------------------------
	// 8️⃣ Uma ocorrência por data, todas com o mesmo conteúdo
	// --------------------------------------------------
	aps := make([]*models.Appointment, 0, len(starts))
	for _, s := range starts {
		ap := &models.Appointment{
			ShopID:           in.ShopID,
			GroomerID:        in.GroomerID,
			ClientID:         client.ID,
			StartTime:        s,
			EndTime:          s.Add(end.Sub(start)),
			Status:           string(domain.InitialStatus()),
			TotalDurationMin: totalDuration,
			TotalPrice:       totalPrice,
			Notes:            in.Notes,
			Pets:             cloneBookings(bookings),
		}

		if seriesID != nil {
			ap.IsRecurring = true
			ap.RecurringID = seriesID
			ap.RecurringValue = interval.Value
			ap.RecurringUnit = string(interval.Unit)
		}

		aps = append(aps, ap)
	}

	if err := uc.repo.CreateAppointments(ctx, aps); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 9️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   &in.GroomerID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &aps[0].ID,
		Metadata: map[string]any{
			"occurrences": len(aps),
			"recurring":   seriesID != nil,
		},
	})

	return aps[0], nil
}
