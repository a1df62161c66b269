package slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waggytails/walk-scheduler/internal/clock"
	domain "github.com/waggytails/walk-scheduler/internal/domain/slot"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
)

func ptr[T any](v T) *T { return &v }

func seedSlot(repo *fakeRepo) models.Slot {
	s := models.Slot{
		ID:          1,
		WalkerID:    100,
		WalkType:    models.WalkTypeGroup,
		Price:       30,
		DurationMin: 60,
		StartTime:   testNow.Add(48 * time.Hour),
		MaxCapacity: 4,
	}
	repo.addSlot(s)
	return s
}

func TestUpdateSlot(t *testing.T) {
	repo := newFakeRepo()
	slot := seedSlot(repo)
	cal := &fakeCalendar{}
	uc := NewUpdateSlot(repo, clock.At(testNow), &fakeAuditor{}, cal)

	s, err := uc.Execute(context.Background(), 100, slot.ID, domain.Patch{
		Price:    ptr(45.0),
		Location: ptr("Fort Greene"),
	})
	require.NoError(t, err)

	assert.Equal(t, 45.0, s.Price)
	assert.Equal(t, "Fort Greene", s.Location)
	assert.Equal(t, 45.0, repo.slots[slot.ID].Price)
	assert.Equal(t, []uint{slot.ID}, cal.updated)
}

func TestUpdateSlotScopedToOwningWalker(t *testing.T) {
	repo := newFakeRepo()
	slot := seedSlot(repo)
	uc := NewUpdateSlot(repo, clock.At(testNow), &fakeAuditor{}, &fakeCalendar{})

	_, err := uc.Execute(context.Background(), 999, slot.ID, domain.Patch{Price: ptr(45.0)})
	assert.True(t, httperr.IsBusiness(err, "slot_not_found"))
}

func TestUpdateSlotScheduleLockedByActiveBooking(t *testing.T) {
	repo := newFakeRepo()
	slot := seedSlot(repo)
	repo.addBooking(1, slot.ID, 200, "pending")
	uc := NewUpdateSlot(repo, clock.At(testNow), &fakeAuditor{}, &fakeCalendar{})

	newStart := testNow.Add(72 * time.Hour)
	_, err := uc.Execute(context.Background(), 100, slot.ID, domain.Patch{StartTime: &newStart})
	assert.True(t, httperr.IsBusiness(err, "slot_locked"))

	_, err = uc.Execute(context.Background(), 100, slot.ID, domain.Patch{DurationMin: ptr(30)})
	assert.True(t, httperr.IsBusiness(err, "slot_locked"))

	// non-schedule fields stay editable
	_, err = uc.Execute(context.Background(), 100, slot.ID, domain.Patch{Price: ptr(50.0)})
	assert.NoError(t, err)
}

func TestUpdateSlotCapacityCannotDropBelowBooked(t *testing.T) {
	repo := newFakeRepo()
	slot := seedSlot(repo) // MaxCapacity 4
	repo.addBooking(1, slot.ID, 200, "pending")
	repo.dogCount[1] = 2
	uc := NewUpdateSlot(repo, clock.At(testNow), &fakeAuditor{}, &fakeCalendar{})

	_, err := uc.Execute(context.Background(), 100, slot.ID, domain.Patch{MaxCapacity: ptr(1)})
	assert.True(t, httperr.IsBusiness(err, "capacity_below_booked"))
	assert.Equal(t, 4, repo.slots[slot.ID].MaxCapacity)

	// shrinking down to the booked count is fine
	s, err := uc.Execute(context.Background(), 100, slot.ID, domain.Patch{MaxCapacity: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, s.MaxCapacity)
}

func TestUpdateSlotCapacityFreeAfterCancellation(t *testing.T) {
	repo := newFakeRepo()
	slot := seedSlot(repo)
	repo.addBooking(1, slot.ID, 200, "cancelled")
	repo.dogCount[1] = 3
	uc := NewUpdateSlot(repo, clock.At(testNow), &fakeAuditor{}, &fakeCalendar{})

	s, err := uc.Execute(context.Background(), 100, slot.ID, domain.Patch{MaxCapacity: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, s.MaxCapacity)
}

func TestUpdateSlotCancelledBookingDoesNotLock(t *testing.T) {
	repo := newFakeRepo()
	slot := seedSlot(repo)
	repo.addBooking(1, slot.ID, 200, "cancelled")
	uc := NewUpdateSlot(repo, clock.At(testNow), &fakeAuditor{}, &fakeCalendar{})

	newStart := testNow.Add(72 * time.Hour)
	s, err := uc.Execute(context.Background(), 100, slot.ID, domain.Patch{StartTime: &newStart})
	require.NoError(t, err)
	assert.Equal(t, newStart, s.StartTime)
}
