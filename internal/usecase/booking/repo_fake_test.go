package booking

import (
	"context"
	"sync"
	"time"

	"github.com/waggytails/walk-scheduler/internal/audit"
	domain "github.com/waggytails/walk-scheduler/internal/domain/booking"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
)

// fakeRepo is an in-memory domain.Repository. A single mutex guards all
// state so the same admission rule the SQL transaction enforces holds
// under concurrent CreateBooking calls.
type fakeRepo struct {
	mu sync.Mutex

	slots    map[uint]*models.Slot
	dogOwner map[uint]uint

	bookings    map[uint]*models.Booking
	bookingDogs map[uint][]uint
	intents     map[uint]*models.PaymentIntent
	reviews     map[uint]*models.Review

	nextBookingID uint
	nextReviewID  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		slots:       map[uint]*models.Slot{},
		dogOwner:    map[uint]uint{},
		bookings:    map[uint]*models.Booking{},
		bookingDogs: map[uint][]uint{},
		intents:     map[uint]*models.PaymentIntent{},
		reviews:     map[uint]*models.Review{},
	}
}

func (r *fakeRepo) addSlot(s models.Slot) {
	r.slots[s.ID] = &s
}

func (r *fakeRepo) addDog(dogID, ownerID uint) {
	r.dogOwner[dogID] = ownerID
}

func (r *fakeRepo) addBooking(b models.Booking, dogIDs ...uint) {
	if b.ID == 0 {
		r.nextBookingID++
		b.ID = r.nextBookingID
	} else if b.ID > r.nextBookingID {
		r.nextBookingID = b.ID
	}
	r.bookings[b.ID] = &b
	r.bookingDogs[b.ID] = dogIDs
}

// -------- domain.Repository --------

func (r *fakeRepo) GetSlot(_ context.Context, slotID uint) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return nil, httperr.ErrBusiness("slot_not_found")
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) CountOwnedDogs(_ context.Context, ownerID uint, dogIDs []uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range dogIDs {
		if r.dogOwner[id] == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking, dogIDs []uint, intent *models.PaymentIntent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[b.SlotID]
	if !ok {
		return httperr.ErrBusiness("slot_not_found")
	}
	if len(dogIDs) > s.MaxCapacity {
		return httperr.ErrBusiness("capacity_exceeded")
	}

	for _, existing := range r.bookings {
		if existing.SlotID == b.SlotID && existing.Status != string(domain.StatusCancelled) {
			return httperr.ErrBusiness("slot_already_booked")
		}
	}

	r.nextBookingID++
	b.ID = r.nextBookingID
	cp := *b
	r.bookings[b.ID] = &cp
	r.bookingDogs[b.ID] = append([]uint(nil), dogIDs...)

	intent.BookingID = b.ID
	icp := *intent
	r.intents[b.ID] = &icp
	return nil
}

func (r *fakeRepo) GetBooking(_ context.Context, bookingID uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	cp := *b
	if s, ok := r.slots[b.SlotID]; ok {
		cp.Slot = *s
	}
	return &cp, nil
}

func (r *fakeRepo) WithBookingLock(_ context.Context, bookingID uint, fn func(*models.Booking) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return httperr.ErrBusiness("booking_not_found")
	}
	cp := *b
	if err := fn(&cp); err != nil {
		return err
	}
	r.bookings[bookingID] = &cp
	return nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID uint) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByWalker(_ context.Context, walkerID uint) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if s, ok := r.slots[b.SlotID]; ok && s.WalkerID == walkerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListActiveOnSlot(_ context.Context, slotID uint) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.SlotID == slotID && b.Status != string(domain.StatusCancelled) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) BookedCapacity(_ context.Context, slotID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int
	for id, b := range r.bookings {
		if b.SlotID == slotID && b.Status != string(domain.StatusCancelled) {
			n += len(r.bookingDogs[id])
		}
	}
	return n, nil
}

func (r *fakeRepo) ListOpenSlots(_ context.Context, f domain.AvailabilityFilter, now time.Time) ([]domain.OpenSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.OpenSlot
	for _, s := range r.slots {
		if !s.StartTime.After(now) || s.StartTime.Before(f.From) || s.StartTime.After(f.To) {
			continue
		}
		if f.WalkType != "" && s.WalkType != f.WalkType {
			continue
		}
		if f.MaxPrice != nil && s.Price > *f.MaxPrice {
			continue
		}
		var booked int
		for id, b := range r.bookings {
			if b.SlotID == s.ID && b.Status != string(domain.StatusCancelled) {
				booked += len(r.bookingDogs[id])
			}
		}
		if booked >= s.MaxCapacity {
			continue
		}
		out = append(out, domain.OpenSlot{Slot: *s, BookedDogs: booked})
	}
	return out, nil
}

func (r *fakeRepo) HasReview(_ context.Context, bookingID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.reviews[bookingID]
	return ok, nil
}

func (r *fakeRepo) CreateReview(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.BookingID]; ok {
		return httperr.ErrBusiness("duplicate_review")
	}
	r.nextReviewID++
	review.ID = r.nextReviewID
	cp := *review
	r.reviews[review.BookingID] = &cp
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// -------- collaborator fakes --------

type fakeCalendar struct {
	mu    sync.Mutex
	syncs int
}

func (c *fakeCalendar) BookingsChanged(models.Slot, []models.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncs++
}

type fakeAuditor struct {
	mu      sync.Mutex
	actions []string
}

func (a *fakeAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, ev.Action)
}
