package slot

import (
	"context"

	"go.uber.org/zap"

	"github.com/waggytails/walk-scheduler/internal/audit"
	"github.com/waggytails/walk-scheduler/internal/clock"
	domain "github.com/waggytails/walk-scheduler/internal/domain/slot"
	"github.com/waggytails/walk-scheduler/internal/notify"
)

type DeleteSlot struct {
	repo     domain.Repository
	clock    clock.Clock
	audit    Auditor
	calendar Calendar
	events   notify.Publisher
	log      *zap.Logger
}

func NewDeleteSlot(
	repo domain.Repository,
	clk clock.Clock,
	audit Auditor,
	calendar Calendar,
	events notify.Publisher,
	log *zap.Logger,
) *DeleteSlot {
	return &DeleteSlot{
		repo:     repo,
		clock:    clk,
		audit:    audit,
		calendar: calendar,
		events:   events,
		log:      log,
	}
}

// Execute removes a slot. A confirmed booking blocks deletion outright;
// pending bookings are cascade-cancelled inside the same transaction that
// drops the slot.
func (uc *DeleteSlot) Execute(
	ctx context.Context,
	walkerID uint,
	slotID uint,
) error {

	s, err := uc.repo.GetSlotForWalker(ctx, slotID, walkerID)
	if err != nil {
		return err
	}

	cancelled, err := uc.repo.DeleteSlotCascade(ctx, s, uc.clock.Now())
	if err != nil {
		return err
	}

	uc.calendar.SlotDeleted(*s)

	for i := range cancelled {
		if err := uc.events.PublishJSON(ctx, "booking.cancelled", map[string]any{
			"booking_id": cancelled[i].ID,
			"owner_id":   cancelled[i].OwnerID,
			"slot_id":    slotID,
			"reason":     "slot_deleted",
		}); err != nil {
			uc.log.Warn("cascade cancel notification failed",
				zap.Uint("booking_id", cancelled[i].ID), zap.Error(err))
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &walkerID,
		Action:   "slot_deleted",
		Entity:   "slot",
		EntityID: &slotID,
		Metadata: map[string]any{"cascade_cancelled": len(cancelled)},
	})

	return nil
}
