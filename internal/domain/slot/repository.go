package slot

import (
	"context"
	"time"

	"github.com/waggytails/walk-scheduler/internal/models"
)

type Repository interface {
	CreateSlot(
		ctx context.Context,
		s *models.Slot,
	) error

	// GetSlotForWalker scopes the lookup to the owning walker; other
	// walkers' slots come back as not found.
	GetSlotForWalker(
		ctx context.Context,
		slotID uint,
		walkerID uint,
	) (*models.Slot, error)

	SaveSlot(
		ctx context.Context,
		s *models.Slot,
	) error

	ListByWalker(
		ctx context.Context,
		walkerID uint,
	) ([]models.Slot, error)

	// -------- Booking lookups feeding slot rules --------
	CountActiveBookings(
		ctx context.Context,
		slotID uint,
	) (int64, error)

	CountConfirmedBookings(
		ctx context.Context,
		slotID uint,
	) (int64, error)

	// BookedCapacity is the number of dogs on non-cancelled bookings,
	// derived at read time.
	BookedCapacity(
		ctx context.Context,
		slotID uint,
	) (int, error)

	// DeleteSlotCascade cancels every pending booking on the slot and
	// removes the slot in one transaction, returning the bookings it
	// cancelled so callers can fan out notifications.
	DeleteSlotCascade(
		ctx context.Context,
		s *models.Slot,
		now time.Time,
	) ([]models.Booking, error)

	SetExternalEventID(
		ctx context.Context,
		slotID uint,
		eventID string,
	) error
}
