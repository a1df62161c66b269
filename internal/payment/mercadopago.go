package payment

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/waggytails/walk-scheduler/internal/models"
)

type MercadoPagoAdapter struct {
	prefs preference.Client
}

func NewMercadoPagoAdapter(accessToken string) (*MercadoPagoAdapter, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPagoAdapter{prefs: preference.NewClient(cfg)}, nil
}

// Register creates a checkout preference carrying the intent reference so
// the gateway webhook can be matched back to the booking later.
func (a *MercadoPagoAdapter) Register(
	ctx context.Context,
	booking *models.Booking,
	intent *models.PaymentIntent,
) error {

	req := preference.Request{
		ExternalReference: intent.Reference,
		Items: []preference.ItemRequest{
			{
				ID:        fmt.Sprintf("booking-%d", booking.ID),
				Title:     "Dog walk",
				Quantity:  1,
				UnitPrice: intent.Amount,
			},
		},
	}

	_, err := a.prefs.Create(ctx, req)
	return err
}

var _ Adapter = (*MercadoPagoAdapter)(nil)
