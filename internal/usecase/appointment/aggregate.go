package appointment

import (
	"context"
	"strings"

	domain "github.com/PawshSuite/groom-scheduler/internal/domain/appointment"
	"github.com/PawshSuite/groom-scheduler/internal/dto"
	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/models"
)

// ======================================================
// AGGREGATE INPUT
// ======================================================

type ItemSelection struct {
	ItemID   uint `json:"item_id"`
	Quantity int  `json:"quantity"`
}

// PetBookingInput é a reserva de um pet: o pet pode não estar cadastrado
// (PetID nulo), mas o nome é obrigatório.
type PetBookingInput struct {
	PetID      *uint           `json:"pet_id"`
	PetName    string          `json:"pet_name"`
	ServiceIDs []uint          `json:"service_ids"`
	Items      []ItemSelection `json:"items"`
}

// PriceOverride troca o preço de um serviço numa linha específica,
// chaveado por (índice do pet, serviço).
// O override não altera a duração registrada do serviço.
type PriceOverride struct {
	PetIndex  int     `json:"pet_index"`
	ServiceID uint    `json:"service_id"`
	Price     float64 `json:"price"`
}

type RecurringInput struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// ======================================================
// VALIDATION
// ======================================================

func validateBookings(pets []PetBookingInput) error {
	for _, p := range pets {
		if strings.TrimSpace(p.PetName) != "" {
			return nil
		}
	}
	return httperr.ErrBusiness("pet_required")
}

// ======================================================
// ASSEMBLY
// ======================================================

type overrideKey struct {
	petIndex  int
	serviceID uint
}

// assembleBookings congela nome/duração/preço de cada serviço e item
// selecionado e devolve os totais derivados. Totais são SEMPRE
// recalculados aqui; nunca aceitos do chamador.
func assembleBookings(
	ctx context.Context,
	repo domain.Repository,
	shopID uint,
	pets []PetBookingInput,
	overrides []PriceOverride,
) ([]models.AppointmentPet, int, float64, error) {

	priceFor := make(map[overrideKey]float64, len(overrides))
	for _, ov := range overrides {
		priceFor[overrideKey{ov.PetIndex, ov.ServiceID}] = ov.Price
	}

	var (
		rows          []models.AppointmentPet
		totalDuration int
		totalPrice    float64
	)

	for idx, p := range pets {
		name := strings.TrimSpace(p.PetName)
		if name == "" {
			continue
		}

		row := models.AppointmentPet{
			PetID:    p.PetID,
			PetName:  name,
			Position: idx,
		}

		for _, serviceID := range p.ServiceIDs {
			svc, err := repo.GetService(ctx, shopID, serviceID)
			if err != nil {
				return nil, 0, 0, httperr.ErrBusiness("service_not_found")
			}

			price := svc.Price
			overridden := false
			if custom, ok := priceFor[overrideKey{idx, serviceID}]; ok {
				price = custom
				overridden = true
			}

			row.Services = append(row.Services, models.AppointmentPetService{
				ServiceID:       svc.ID,
				ServiceName:     svc.Name,
				DurationMin:     svc.DurationMin,
				Price:           price,
				PriceOverridden: overridden,
			})

			totalDuration += svc.DurationMin
			totalPrice += price
		}

		for _, sel := range p.Items {
			item, err := repo.GetItem(ctx, shopID, sel.ItemID)
			if err != nil {
				return nil, 0, 0, httperr.ErrBusiness("item_not_found")
			}

			qty := sel.Quantity
			if qty < 1 {
				qty = 1
			}

			row.Items = append(row.Items, models.AppointmentPetItem{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Quantity:  qty,
				UnitPrice: item.Price,
			})

			totalPrice += item.Price * float64(qty)
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, 0, 0, httperr.ErrBusiness("pet_required")
	}

	return rows, totalDuration, totalPrice, nil
}

// cloneBookings copia as linhas de pets para outra ocorrência da série.
// Cada ocorrência persiste as próprias linhas.
func cloneBookings(rows []models.AppointmentPet) []models.AppointmentPet {
	out := make([]models.AppointmentPet, len(rows))
	for i, r := range rows {
		cp := models.AppointmentPet{
			PetID:    r.PetID,
			PetName:  r.PetName,
			Position: r.Position,
		}

		cp.Services = make([]models.AppointmentPetService, len(r.Services))
		for j, s := range r.Services {
			cp.Services[j] = models.AppointmentPetService{
				ServiceID:       s.ServiceID,
				ServiceName:     s.ServiceName,
				DurationMin:     s.DurationMin,
				Price:           s.Price,
				PriceOverridden: s.PriceOverridden,
			}
		}

		cp.Items = make([]models.AppointmentPetItem, len(r.Items))
		for j, it := range r.Items {
			cp.Items[j] = models.AppointmentPetItem{
				ItemID:    it.ItemID,
				ItemName:  it.ItemName,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			}
		}

		out[i] = cp
	}
	return out
}

// ======================================================
// DTO MAPPING
// ======================================================

func toListDTO(ap models.Appointment) dto.AppointmentListDTO {
	petNames := make([]string, 0, len(ap.Pets))
	for _, p := range ap.Pets {
		petNames = append(petNames, p.PetName)
	}

	return dto.AppointmentListDTO{
		ID:               ap.ID,
		StartTime:        ap.StartTime,
		EndTime:          ap.EndTime,
		Status:           ap.Status,
		ClientName:       ap.Client.Name,
		PetNames:         petNames,
		TotalDurationMin: ap.TotalDurationMin,
		TotalPrice:       ap.TotalPrice,
		IsRecurring:      ap.IsRecurring,
		RecurringID:      ap.RecurringID,
	}
}
