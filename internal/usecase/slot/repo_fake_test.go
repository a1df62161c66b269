package slot

import (
	"context"
	"time"

	"github.com/waggytails/walk-scheduler/internal/audit"
	bookingdomain "github.com/waggytails/walk-scheduler/internal/domain/booking"
	domain "github.com/waggytails/walk-scheduler/internal/domain/slot"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
)

// fakeRepo is an in-memory domain.Repository for exercising slot rules
// without a database.
type fakeRepo struct {
	slots    map[uint]*models.Slot
	bookings map[uint]*models.Booking
	dogCount map[uint]int

	nextSlotID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		slots:    map[uint]*models.Slot{},
		bookings: map[uint]*models.Booking{},
		dogCount: map[uint]int{},
	}
}

func (r *fakeRepo) addSlot(s models.Slot) {
	if s.ID > r.nextSlotID {
		r.nextSlotID = s.ID
	}
	r.slots[s.ID] = &s
}

func (r *fakeRepo) addBooking(id uint, slotID uint, ownerID uint, status string) {
	r.bookings[id] = &models.Booking{ID: id, SlotID: slotID, OwnerID: ownerID, Status: status}
	r.dogCount[id] = 1
}

func (r *fakeRepo) CreateSlot(_ context.Context, s *models.Slot) error {
	r.nextSlotID++
	s.ID = r.nextSlotID
	cp := *s
	r.slots[s.ID] = &cp
	return nil
}

func (r *fakeRepo) GetSlotForWalker(_ context.Context, slotID, walkerID uint) (*models.Slot, error) {
	s, ok := r.slots[slotID]
	if !ok || s.WalkerID != walkerID {
		return nil, httperr.ErrBusiness("slot_not_found")
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) SaveSlot(_ context.Context, s *models.Slot) error {
	cp := *s
	r.slots[s.ID] = &cp
	return nil
}

func (r *fakeRepo) ListByWalker(_ context.Context, walkerID uint) ([]models.Slot, error) {
	var out []models.Slot
	for _, s := range r.slots {
		if s.WalkerID == walkerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountActiveBookings(_ context.Context, slotID uint) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.SlotID == slotID && b.Status != string(bookingdomain.StatusCancelled) {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) CountConfirmedBookings(_ context.Context, slotID uint) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.SlotID == slotID && b.Status == string(bookingdomain.StatusConfirmed) {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) BookedCapacity(_ context.Context, slotID uint) (int, error) {
	var n int
	for id, b := range r.bookings {
		if b.SlotID == slotID && b.Status != string(bookingdomain.StatusCancelled) {
			n += r.dogCount[id]
		}
	}
	return n, nil
}

func (r *fakeRepo) DeleteSlotCascade(_ context.Context, s *models.Slot, now time.Time) ([]models.Booking, error) {
	confirmed, _ := r.CountConfirmedBookings(context.Background(), s.ID)
	if confirmed > 0 {
		return nil, httperr.ErrBusiness("slot_has_confirmed_booking")
	}

	var cancelled []models.Booking
	for _, b := range r.bookings {
		if b.SlotID == s.ID && b.Status == string(bookingdomain.StatusPending) {
			b.Status = string(bookingdomain.StatusCancelled)
			b.CancelledAt = &now
			cancelled = append(cancelled, *b)
		}
	}
	delete(r.slots, s.ID)
	return cancelled, nil
}

func (r *fakeRepo) SetExternalEventID(_ context.Context, slotID uint, eventID string) error {
	if s, ok := r.slots[slotID]; ok {
		s.ExternalEventID = eventID
	}
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// -------- collaborator fakes --------

type fakeCalendar struct {
	created []uint
	updated []uint
	deleted []uint
}

func (c *fakeCalendar) SlotCreated(s models.Slot) { c.created = append(c.created, s.ID) }
func (c *fakeCalendar) SlotUpdated(s models.Slot) { c.updated = append(c.updated, s.ID) }
func (c *fakeCalendar) SlotDeleted(s models.Slot) { c.deleted = append(c.deleted, s.ID) }

type fakeAuditor struct {
	actions []string
}

func (a *fakeAuditor) Dispatch(ev audit.Event) {
	a.actions = append(a.actions, ev.Action)
}
