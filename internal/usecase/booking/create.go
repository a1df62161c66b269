package booking

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waggytails/walk-scheduler/internal/audit"
	"github.com/waggytails/walk-scheduler/internal/clock"
	domain "github.com/waggytails/walk-scheduler/internal/domain/booking"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
	"github.com/waggytails/walk-scheduler/internal/notify"
	"github.com/waggytails/walk-scheduler/internal/payment"
)

// Calendar is the slice of the calendar dispatcher booking usecases touch.
type Calendar interface {
	BookingsChanged(slot models.Slot, bookings []models.Booking)
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	OwnerID uint
	SlotID  uint

	DogIDs []uint

	PickupAddress string
	Note          string
	PaymentMethod string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	clock    clock.Clock
	audit    Auditor
	calendar Calendar
	payments payment.Adapter
	events   notify.Publisher
	log      *zap.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	clk clock.Clock,
	auditor Auditor,
	calendar Calendar,
	payments payment.Adapter,
	events notify.Publisher,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		clock:    clk,
		audit:    auditor,
		calendar: calendar,
		payments: payments,
		events:   events,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Input shape
	// --------------------------------------------------
	dogIDs := dedupe(in.DogIDs)
	if len(dogIDs) == 0 {
		return nil, httperr.ErrBusiness("missing_dogs")
	}
	if in.PickupAddress == "" {
		return nil, httperr.ErrBusiness("missing_pickup_address")
	}

	// --------------------------------------------------
	// 2. Slot
	// --------------------------------------------------
	slot, err := uc.repo.GetSlot(ctx, in.SlotID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Dog ownership
	// --------------------------------------------------
	owned, err := uc.repo.CountOwnedDogs(ctx, in.OwnerID, dogIDs)
	if err != nil {
		return nil, err
	}
	if owned != int64(len(dogIDs)) {
		return nil, httperr.ErrBusiness("dog_not_owned")
	}

	// --------------------------------------------------
	// 4. Capacity
	// --------------------------------------------------
	if len(dogIDs) > slot.MaxCapacity {
		return nil, httperr.ErrBusiness("capacity_exceeded")
	}

	// --------------------------------------------------
	// 5. Admission + persistence (single transaction)
	// --------------------------------------------------
	b := &models.Booking{
		SlotID:        slot.ID,
		OwnerID:       in.OwnerID,
		Status:        string(domain.StatusPending),
		PickupAddress: in.PickupAddress,
		Note:          in.Note,
		WalkStartTime: slot.StartTime,
		DurationMin:   slot.DurationMin,
	}

	intent := &models.PaymentIntent{
		Reference: uuid.NewString(),
		Amount:    slot.Price,
		Method:    in.PaymentMethod,
		Status:    models.PaymentPending,
	}

	// The repository re-validates the "no live booking on this slot" rule
	// under lock; the slot and capacity checks above are advisory reads.
	if err := uc.repo.CreateBooking(ctx, b, dogIDs, intent); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Side effects, all best-effort
	// --------------------------------------------------
	if err := uc.payments.Register(ctx, b, intent); err != nil {
		uc.log.Warn("payment gateway registration failed",
			zap.Uint("booking_id", b.ID), zap.Error(err))
	}

	uc.syncSlot(ctx, *slot)

	if err := uc.events.PublishJSON(ctx, "booking.created", map[string]any{
		"booking_id": b.ID,
		"slot_id":    slot.ID,
		"owner_id":   in.OwnerID,
		"walker_id":  slot.WalkerID,
		"dogs":       len(dogIDs),
		"start":      slot.StartTime.Unix(),
	}); err != nil {
		uc.log.Warn("booking notification failed",
			zap.Uint("booking_id", b.ID), zap.Error(err))
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.OwnerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

func (uc *CreateBooking) syncSlot(ctx context.Context, slot models.Slot) {
	active, err := uc.repo.ListActiveOnSlot(ctx, slot.ID)
	if err != nil {
		uc.log.Warn("listing slot bookings for calendar sync failed",
			zap.Uint("slot_id", slot.ID), zap.Error(err))
		return
	}
	uc.calendar.BookingsChanged(slot, active)
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
