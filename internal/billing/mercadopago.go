package billing

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/PawshSuite/groom-scheduler/internal/models"
)

// MercadoPago cria uma preference de checkout a partir da fatura.
type MercadoPago struct {
	prefs preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		prefs: preference.NewClient(cfg),
	}, nil
}

func (m *MercadoPago) PaymentLink(
	ctx context.Context,
	inv *models.Invoice,
) (string, error) {

	items := make([]preference.ItemRequest, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		items = append(items, preference.ItemRequest{
			Title:     line.Description,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	req := preference.Request{
		Items:             items,
		ExternalReference: fmt.Sprintf("invoice-%d", inv.AppointmentID),
	}

	resp, err := m.prefs.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("mercadopago preference: %w", err)
	}

	return resp.InitPoint, nil
}

// Compile-time check
var _ PaymentLinker = (*MercadoPago)(nil)
