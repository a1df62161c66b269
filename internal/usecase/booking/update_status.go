package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/waggytails/walk-scheduler/internal/audit"
	"github.com/waggytails/walk-scheduler/internal/clock"
	domain "github.com/waggytails/walk-scheduler/internal/domain/booking"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
	"github.com/waggytails/walk-scheduler/internal/notify"
)

type UpdateStatus struct {
	repo     domain.Repository
	clock    clock.Clock
	audit    Auditor
	calendar Calendar
	events   notify.Publisher
	log      *zap.Logger
}

func NewUpdateStatus(
	repo domain.Repository,
	clk clock.Clock,
	auditor Auditor,
	calendar Calendar,
	events notify.Publisher,
	log *zap.Logger,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		clock:    clk,
		audit:    auditor,
		calendar: calendar,
		events:   events,
		log:      log,
	}
}

// Execute moves a booking through the state machine on behalf of actorID.
// The role is derived from ids, and the transition is re-evaluated under a
// row lock so two racing updates cannot both win.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	actorID uint,
	bookingID uint,
	newStatus string,
) (*models.Booking, error) {
	return uc.execute(ctx, actorID, bookingID, newStatus, nil)
}

// execute additionally runs guard on the locked row before the transition,
// so policies that depend on the committed status cannot be raced past.
func (uc *UpdateStatus) execute(
	ctx context.Context,
	actorID uint,
	bookingID uint,
	newStatus string,
	guard func(*models.Booking) error,
) (*models.Booking, error) {

	if !domain.ValidStatus(newStatus) {
		return nil, httperr.ErrBusiness("invalid_status")
	}
	to := domain.Status(newStatus)

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	actor, err := domain.ActorFor(b, b.Slot.WalkerID, actorID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	var updated models.Booking
	err = uc.repo.WithBookingLock(ctx, bookingID, func(locked *models.Booking) error {
		if guard != nil {
			if err := guard(locked); err != nil {
				return err
			}
		}
		if err := domain.Transition(locked, to, actor, now); err != nil {
			return err
		}
		updated = *locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.syncSlot(ctx, b.Slot)

	if err := uc.events.PublishJSON(ctx, "booking.status_changed", map[string]any{
		"booking_id": bookingID,
		"slot_id":    b.SlotID,
		"owner_id":   b.OwnerID,
		"walker_id":  b.Slot.WalkerID,
		"status":     newStatus,
	}); err != nil {
		uc.log.Warn("status notification failed",
			zap.Uint("booking_id", bookingID), zap.Error(err))
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "booking_" + newStatus,
		Entity:   "booking",
		EntityID: &bookingID,
	})

	updated.Slot = b.Slot
	updated.Dogs = b.Dogs
	return &updated, nil
}

func (uc *UpdateStatus) syncSlot(ctx context.Context, slot models.Slot) {
	active, err := uc.repo.ListActiveOnSlot(ctx, slot.ID)
	if err != nil {
		uc.log.Warn("listing slot bookings for calendar sync failed",
			zap.Uint("slot_id", slot.ID), zap.Error(err))
		return
	}
	uc.calendar.BookingsChanged(slot, active)
}
