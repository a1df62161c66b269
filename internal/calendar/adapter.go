package calendar

import (
	"context"

	"github.com/waggytails/walk-scheduler/internal/models"
)

// Adapter mirrors slots into an external provider calendar. Every call is
// best-effort from the caller's point of view; nothing in the core waits on
// or rolls back over an adapter failure.
type Adapter interface {
	CreateEvent(ctx context.Context, slot *models.Slot) (string, error)
	UpdateEvent(ctx context.Context, eventID string, slot *models.Slot) error
	DeleteEvent(ctx context.Context, eventID string) error

	// UpsertWithBookings refreshes the slot's event so its summary and
	// color reflect the aggregate dog count and status mix. Returns the
	// event id, creating the event when eventID is empty.
	UpsertWithBookings(ctx context.Context, eventID string, slot *models.Slot, bookings []models.Booking) (string, error)
}

// Noop satisfies Adapter when no calendar provider is configured.
type Noop struct{}

func (Noop) CreateEvent(context.Context, *models.Slot) (string, error) { return "", nil }

func (Noop) UpdateEvent(context.Context, string, *models.Slot) error { return nil }

func (Noop) DeleteEvent(context.Context, string) error { return nil }

func (Noop) UpsertWithBookings(_ context.Context, eventID string, _ *models.Slot, _ []models.Booking) (string, error) {
	return eventID, nil
}

var _ Adapter = Noop{}
