package billing

import (
	"context"

	"github.com/PawshSuite/groom-scheduler/internal/models"
)

// PaymentLinker gera um link de pagamento para uma fatura.
// A emissão da fatura nunca depende do provedor: link vazio é válido.
type PaymentLinker interface {
	PaymentLink(ctx context.Context, inv *models.Invoice) (string, error)
}

// Disabled é o provedor quando nenhum gateway está configurado.
type Disabled struct{}

func (Disabled) PaymentLink(ctx context.Context, inv *models.Invoice) (string, error) {
	return "", nil
}
