package slot

import (
	"context"

	"github.com/waggytails/walk-scheduler/internal/audit"
	"github.com/waggytails/walk-scheduler/internal/clock"
	domain "github.com/waggytails/walk-scheduler/internal/domain/slot"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
)

type UpdateSlot struct {
	repo     domain.Repository
	clock    clock.Clock
	audit    Auditor
	calendar Calendar
}

func NewUpdateSlot(
	repo domain.Repository,
	clk clock.Clock,
	audit Auditor,
	calendar Calendar,
) *UpdateSlot {
	return &UpdateSlot{
		repo:     repo,
		clock:    clk,
		audit:    audit,
		calendar: calendar,
	}
}

func (uc *UpdateSlot) Execute(
	ctx context.Context,
	walkerID uint,
	slotID uint,
	patch domain.Patch,
) (*models.Slot, error) {

	s, err := uc.repo.GetSlotForWalker(ctx, slotID, walkerID)
	if err != nil {
		return nil, err
	}

	// Schedule fields freeze once someone holds a live booking against
	// the slot; their snapshot would otherwise silently diverge.
	if patch.TouchesSchedule() {
		active, err := uc.repo.CountActiveBookings(ctx, slotID)
		if err != nil {
			return nil, err
		}
		if active > 0 {
			return nil, httperr.ErrBusiness("slot_locked")
		}
	}

	// Capacity can only shrink down to what is already booked; dogs on a
	// live booking never become overbooked retroactively.
	if patch.MaxCapacity != nil {
		booked, err := uc.repo.BookedCapacity(ctx, slotID)
		if err != nil {
			return nil, err
		}
		if *patch.MaxCapacity < booked {
			return nil, httperr.ErrBusiness("capacity_below_booked")
		}
	}

	if err := domain.Apply(s, patch, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveSlot(ctx, s); err != nil {
		return nil, err
	}

	uc.calendar.SlotUpdated(*s)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &walkerID,
		Action:   "slot_updated",
		Entity:   "slot",
		EntityID: &s.ID,
	})

	return s, nil
}
