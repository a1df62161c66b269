package slot

import (
	"context"
	"time"

	"github.com/waggytails/walk-scheduler/internal/audit"
	"github.com/waggytails/walk-scheduler/internal/clock"
	domain "github.com/waggytails/walk-scheduler/internal/domain/slot"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
)

// Calendar is the slice of the calendar dispatcher slot usecases touch.
// Every call is fire-and-forget.
type Calendar interface {
	SlotCreated(slot models.Slot)
	SlotUpdated(slot models.Slot)
	SlotDeleted(slot models.Slot)
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// INPUT
// ======================================================

type CreateSlotInput struct {
	WalkerID uint

	WalkType string
	Price    float64

	StartTime time.Time
	EndTime   time.Time

	Location    string
	MaxCapacity int
}

// ======================================================
// USE CASE
// ======================================================

type CreateSlot struct {
	repo     domain.Repository
	clock    clock.Clock
	audit    Auditor
	calendar Calendar
}

func NewCreateSlot(
	repo domain.Repository,
	clk clock.Clock,
	audit Auditor,
	calendar Calendar,
) *CreateSlot {
	return &CreateSlot{
		repo:     repo,
		clock:    clk,
		audit:    audit,
		calendar: calendar,
	}
}

func (uc *CreateSlot) Execute(
	ctx context.Context,
	in CreateSlotInput,
) (*models.Slot, error) {

	if in.EndTime.IsZero() || in.StartTime.IsZero() {
		return nil, httperr.ErrBusiness("missing_start_time")
	}

	duration := in.EndTime.Sub(in.StartTime)
	s := &models.Slot{
		WalkerID:    in.WalkerID,
		WalkType:    in.WalkType,
		Price:       in.Price,
		DurationMin: int(duration / time.Minute),
		StartTime:   in.StartTime.UTC(),
		Location:    in.Location,
		MaxCapacity: in.MaxCapacity,
	}

	if err := domain.ValidateNew(s, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateSlot(ctx, s); err != nil {
		return nil, err
	}

	// Mirror to the external calendar off the request path; a provider
	// outage never fails slot creation.
	uc.calendar.SlotCreated(*s)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.WalkerID,
		Action:   "slot_created",
		Entity:   "slot",
		EntityID: &s.ID,
	})

	return s, nil
}
