package appointment

import (
	"context"
	"fmt"

	"github.com/PawshSuite/groom-scheduler/internal/audit"
	"github.com/PawshSuite/groom-scheduler/internal/billing"
	domain "github.com/PawshSuite/groom-scheduler/internal/domain/appointment"
	"github.com/PawshSuite/groom-scheduler/internal/httperr"
	"github.com/PawshSuite/groom-scheduler/internal/models"
)

// ======================================================
// CHECKOUT
// ======================================================

// Checkout converte um atendimento concluído em fatura: uma linha por
// serviço e por item, preços congelados no agendamento.
type Checkout struct {
	repo     domain.Repository
	payments billing.PaymentLinker
	audit    *audit.Dispatcher
}

func NewCheckout(
	repo domain.Repository,
	payments billing.PaymentLinker,
	audit *audit.Dispatcher,
) *Checkout {
	return &Checkout{
		repo:     repo,
		payments: payments,
		audit:    audit,
	}
}

func (uc *Checkout) Execute(
	ctx context.Context,
	shopID uint,
	groomerID uint,
	appointmentID uint,
) (*models.Invoice, error) {

	ap, err := uc.repo.GetAppointmentForGroomer(ctx, appointmentID, groomerID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if domain.Status(ap.Status) != domain.StatusCompleted {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	inv := &models.Invoice{
		ShopID:        shopID,
		AppointmentID: ap.ID,
		ClientID:      ap.ClientID,
		Status:        "open",
	}

	for _, pet := range ap.Pets {
		for _, svc := range pet.Services {
			inv.Lines = append(inv.Lines, models.InvoiceLine{
				Description: fmt.Sprintf("%s - %s", pet.PetName, svc.ServiceName),
				Quantity:    1,
				UnitPrice:   svc.Price,
				Amount:      svc.Price,
			})
		}
		for _, item := range pet.Items {
			amount := item.UnitPrice * float64(item.Quantity)
			inv.Lines = append(inv.Lines, models.InvoiceLine{
				Description: item.ItemName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Amount:      amount,
			})
		}
	}

	for _, line := range inv.Lines {
		inv.Total += line.Amount
	}

	// Link de pagamento é opcional: falha do gateway não bloqueia a fatura.
	if link, err := uc.payments.PaymentLink(ctx, inv); err == nil {
		inv.PaymentLink = link
	}

	if err := uc.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &groomerID,
		Action:   "appointment_checked_out",
		Entity:   "invoice",
		EntityID: &inv.ID,
		Metadata: map[string]any{
			"appointment_id": ap.ID,
			"total":          inv.Total,
		},
	})

	return inv, nil
}
