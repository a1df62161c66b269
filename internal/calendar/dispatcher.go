package calendar

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/waggytails/walk-scheduler/internal/models"
)

// EventStore persists the external event id the provider hands back.
type EventStore interface {
	SetExternalEventID(ctx context.Context, slotID uint, eventID string) error
}

type jobKind int

const (
	jobSlotCreated jobKind = iota
	jobSlotUpdated
	jobSlotDeleted
	jobBookingsChanged
)

type job struct {
	kind     jobKind
	slot     models.Slot
	bookings []models.Booking
}

// Dispatcher pushes calendar mirroring off the request path. Jobs run on a
// single worker with their own context; a full queue drops the job; the
// calendar is a mirror, never the source of truth.
type Dispatcher struct {
	adapter Adapter
	store   EventStore
	log     *zap.Logger
	queue   chan job
}

func NewDispatcher(adapter Adapter, store EventStore, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		adapter: adapter,
		store:   store,
		log:     log,
		queue:   make(chan job, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) SlotCreated(slot models.Slot) {
	d.dispatch(job{kind: jobSlotCreated, slot: slot})
}

func (d *Dispatcher) SlotUpdated(slot models.Slot) {
	d.dispatch(job{kind: jobSlotUpdated, slot: slot})
}

func (d *Dispatcher) SlotDeleted(slot models.Slot) {
	d.dispatch(job{kind: jobSlotDeleted, slot: slot})
}

func (d *Dispatcher) BookingsChanged(slot models.Slot, bookings []models.Booking) {
	d.dispatch(job{kind: jobBookingsChanged, slot: slot, bookings: bookings})
}

func (d *Dispatcher) dispatch(j job) {
	select {
	case d.queue <- j:
	default:
		d.log.Warn("calendar queue full, dropping sync job",
			zap.Uint("slot_id", j.slot.ID))
	}
}

func (d *Dispatcher) worker() {
	for j := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := d.run(ctx, j); err != nil {
			d.log.Warn("calendar sync failed",
				zap.Uint("slot_id", j.slot.ID),
				zap.Error(err))
		}
		cancel()
	}
}

func (d *Dispatcher) run(ctx context.Context, j job) error {
	switch j.kind {

	case jobSlotCreated:
		eventID, err := d.adapter.CreateEvent(ctx, &j.slot)
		if err != nil {
			return err
		}
		if eventID == "" {
			return nil
		}
		return d.store.SetExternalEventID(ctx, j.slot.ID, eventID)

	case jobSlotUpdated:
		if j.slot.ExternalEventID == "" {
			eventID, err := d.adapter.CreateEvent(ctx, &j.slot)
			if err != nil || eventID == "" {
				return err
			}
			return d.store.SetExternalEventID(ctx, j.slot.ID, eventID)
		}
		return d.adapter.UpdateEvent(ctx, j.slot.ExternalEventID, &j.slot)

	case jobSlotDeleted:
		if j.slot.ExternalEventID == "" {
			return nil
		}
		return d.adapter.DeleteEvent(ctx, j.slot.ExternalEventID)

	case jobBookingsChanged:
		eventID, err := d.adapter.UpsertWithBookings(ctx, j.slot.ExternalEventID, &j.slot, j.bookings)
		if err != nil {
			return err
		}
		if eventID != "" && eventID != j.slot.ExternalEventID {
			return d.store.SetExternalEventID(ctx, j.slot.ID, eventID)
		}
	}
	return nil
}
