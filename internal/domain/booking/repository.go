package booking

import (
	"context"
	"time"

	"github.com/waggytails/walk-scheduler/internal/models"
)

type Repository interface {
	// -------- Slot --------
	GetSlot(
		ctx context.Context,
		slotID uint,
	) (*models.Slot, error)

	// -------- Dogs --------
	CountOwnedDogs(
		ctx context.Context,
		ownerID uint,
		dogIDs []uint,
	) (int64, error)

	// -------- Booking (create / admission) --------

	// CreateBooking persists the booking, its payment intent and one dog
	// association per dog in a single transaction. The admission check (no
	// non-cancelled booking on the slot) runs inside the same transaction
	// under lock; the loser of a race gets slot_already_booked.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
		dogIDs []uint,
		intent *models.PaymentIntent,
	) error

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	// WithBookingLock re-reads the booking under a row lock, applies fn and
	// saves the result; fn failing aborts without a write. Status rules
	// re-evaluated inside fn therefore see committed state, which closes the
	// lost-update window between concurrent transitions.
	WithBookingLock(
		ctx context.Context,
		bookingID uint,
		fn func(*models.Booking) error,
	) error

	ListByOwner(
		ctx context.Context,
		ownerID uint,
	) ([]models.Booking, error)

	ListByWalker(
		ctx context.Context,
		walkerID uint,
	) ([]models.Booking, error)

	ListActiveOnSlot(
		ctx context.Context,
		slotID uint,
	) ([]models.Booking, error)

	// -------- Availability --------
	BookedCapacity(
		ctx context.Context,
		slotID uint,
	) (int, error)

	ListOpenSlots(
		ctx context.Context,
		f AvailabilityFilter,
		now time.Time,
	) ([]OpenSlot, error)

	// -------- Review --------
	HasReview(
		ctx context.Context,
		bookingID uint,
	) (bool, error)

	CreateReview(
		ctx context.Context,
		review *models.Review,
	) error
}
