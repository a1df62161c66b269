package booking

import (
	"context"

	"github.com/waggytails/walk-scheduler/internal/clock"
	domain "github.com/waggytails/walk-scheduler/internal/domain/booking"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
)

type CancelAsOwner struct {
	repo         domain.Repository
	clock        clock.Clock
	updateStatus *UpdateStatus
}

func NewCancelAsOwner(
	repo domain.Repository,
	clk clock.Clock,
	updateStatus *UpdateStatus,
) *CancelAsOwner {
	return &CancelAsOwner{
		repo:         repo,
		clock:        clk,
		updateStatus: updateStatus,
	}
}

// Execute is owner-initiated cancellation. The 24h notice window only
// applies to a confirmed booking; backing out of a still-pending request
// is free. The window is checked on the locked row, so a confirmation
// landing just before the cancel still gates it.
func (uc *CancelAsOwner) Execute(
	ctx context.Context,
	ownerID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, httperr.ErrBusiness("forbidden")
	}

	return uc.updateStatus.execute(ctx, ownerID, bookingID, string(domain.StatusCancelled),
		func(locked *models.Booking) error {
			if domain.Status(locked.Status) == domain.StatusConfirmed &&
				!domain.IsCancellable(locked, uc.clock.Now()) {
				return httperr.ErrBusiness("cancellation_window_passed")
			}
			return nil
		})
}
