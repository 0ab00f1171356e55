package appointment

import (
	"context"
	"time"

	domain "github.com/PawshSuite/groom-scheduler/internal/domain/appointment"
	"github.com/PawshSuite/groom-scheduler/internal/domain/schedule"
	"github.com/PawshSuite/groom-scheduler/internal/dto"
	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/models"
	"github.com/PawshSuite/groom-scheduler/internal/timezone"
)

const defaultColumnWidth = 240.0

// ======================================================
// DAY VIEW
// ======================================================

type DayViewInput struct {
	ShopID    uint
	GroomerID uint

	Date string
	Zoom float64

	// Largura da coluna do dia; 0 usa o default.
	ColumnWidth float64
}

type DayView struct {
	repo domain.Repository
}

func NewDayView(repo domain.Repository) *DayView {
	return &DayView{repo: repo}
}

// Execute monta a coluna do dia. A entrada do agrupador exclui cancelados
// e no-show; a listagem do dia mantém todos os status. Sempre relê a
// janela inteira do banco, sem merge incremental de cache.
func (uc *DayView) Execute(
	ctx context.Context,
	in DayViewInput,
) (*dto.DayViewDTO, error) {

	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	date, err := time.ParseInLocation(timezone.DateLayout, in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	// AddDate, não +24h: dia de virada de horário de verão tem 23h ou 25h
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		in.GroomerID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	zoom := schedule.ClampZoom(in.Zoom)

	columnWidth := in.ColumnWidth
	if columnWidth <= 0 {
		columnWidth = defaultColumnWidth
	}

	// --------------------------------------------------
	// Só agendamentos visíveis entram no layout
	// --------------------------------------------------
	visible := make([]models.Appointment, 0, len(appointments))
	for _, ap := range appointments {
		if domain.CalendarVisible(domain.Status(ap.Status)) {
			visible = append(visible, ap)
		}
	}

	groups := schedule.GroupByStart(visible)
	placements := schedule.Layout(groups, columnWidth, zoom)

	out := &dto.DayViewDTO{
		Date:       in.Date,
		Zoom:       zoom,
		Slots:      schedule.DaySlots(zoom),
		Placements: placements,
	}

	if top, ok := schedule.NowMarker(timezone.NowIn(shop.Timezone), start, zoom); ok {
		out.NowMarker = &top
	}

	out.Appointments = make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out.Appointments = append(out.Appointments, toListDTO(ap))
	}

	return out, nil
}
