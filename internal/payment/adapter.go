package payment

import (
	"context"

	"github.com/waggytails/walk-scheduler/internal/models"
)

// Adapter registers a booking's payment intent with the external gateway.
// The intent row is already committed when Register runs; gateway failures
// are logged by the caller and never undo the booking.
type Adapter interface {
	Register(ctx context.Context, booking *models.Booking, intent *models.PaymentIntent) error
}

// Offline is the default adapter when no gateway is configured: the intent
// reference alone is enough for manual settlement.
type Offline struct{}

func (Offline) Register(context.Context, *models.Booking, *models.PaymentIntent) error {
	return nil
}

var _ Adapter = Offline{}
