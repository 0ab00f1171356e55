package appointment

import (
	"context"
	"time"

	domain "github.com/PawshSuite/groom-scheduler/internal/domain/appointment"
	"github.com/PawshSuite/groom-scheduler/internal/dto"
	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/timezone"
)

type ListWeek struct {
	repo domain.Repository
}

func NewListWeek(repo domain.Repository) *ListWeek {
	return &ListWeek{repo: repo}
}

// Execute devolve a janela de 7 dias a partir da data dada. É a janela
// que a interface reexibe por inteiro após qualquer mutação.
func (uc *ListWeek) Execute(
	ctx context.Context,
	groomerID uint,
	shopID uint,
	startDate string,
) ([]dto.AppointmentListDTO, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	date, err := time.ParseInLocation(timezone.DateLayout, startDate, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 7)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		groomerID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, toListDTO(ap))
	}

	return out, nil
}
