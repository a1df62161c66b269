package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waggytails/walk-scheduler/internal/clock"
	domain "github.com/waggytails/walk-scheduler/internal/domain/booking"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
	"github.com/waggytails/walk-scheduler/internal/notify"
	"github.com/waggytails/walk-scheduler/internal/payment"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newCreateBookingUC(repo *fakeRepo) (*CreateBooking, *fakeCalendar, *fakeAuditor) {
	cal := &fakeCalendar{}
	aud := &fakeAuditor{}
	uc := NewCreateBooking(
		repo, clock.At(testNow), aud, cal,
		payment.Offline{}, notify.Noop{}, zap.NewNop(),
	)
	return uc, cal, aud
}

func seedSlot(repo *fakeRepo) models.Slot {
	s := models.Slot{
		ID:          1,
		WalkerID:    100,
		WalkType:    models.WalkTypeGroup,
		Price:       35,
		DurationMin: 60,
		StartTime:   testNow.Add(48 * time.Hour),
		MaxCapacity: 3,
	}
	repo.addSlot(s)
	return s
}

func TestCreateBooking(t *testing.T) {
	repo := newFakeRepo()
	slot := seedSlot(repo)
	repo.addDog(7, 200)
	repo.addDog(8, 200)

	uc, cal, aud := newCreateBookingUC(repo)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		OwnerID:       200,
		SlotID:        slot.ID,
		DogIDs:        []uint{7, 8, 7}, // duplicate collapses
		PickupAddress: "12 Maple St",
		Note:          "gate code 4411",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Equal(t, slot.StartTime, b.WalkStartTime)
	assert.Equal(t, slot.DurationMin, b.DurationMin)
	assert.Equal(t, []uint{7, 8}, repo.bookingDogs[b.ID])

	intent := repo.intents[b.ID]
	require.NotNil(t, intent)
	assert.Equal(t, slot.Price, intent.Amount)
	assert.Equal(t, models.PaymentPending, intent.Status)
	assert.NotEmpty(t, intent.Reference)

	assert.Equal(t, 1, cal.syncs)
	assert.Equal(t, []string{"booking_created"}, aud.actions)
}

func TestCreateBookingValidation(t *testing.T) {
	repo := newFakeRepo()
	slot := seedSlot(repo)
	repo.addDog(7, 200)
	repo.addDog(9, 999) // someone else's dog

	uc, _, _ := newCreateBookingUC(repo)
	valid := CreateBookingInput{
		OwnerID:       200,
		SlotID:        slot.ID,
		DogIDs:        []uint{7},
		PickupAddress: "12 Maple St",
	}

	tests := []struct {
		name     string
		mutate   func(*CreateBookingInput)
		wantCode string
	}{
		{"no dogs", func(in *CreateBookingInput) { in.DogIDs = nil }, "missing_dogs"},
		{"no pickup address", func(in *CreateBookingInput) { in.PickupAddress = "" }, "missing_pickup_address"},
		{"unknown slot", func(in *CreateBookingInput) { in.SlotID = 42 }, "slot_not_found"},
		{"foreign dog", func(in *CreateBookingInput) { in.DogIDs = []uint{7, 9} }, "dog_not_owned"},
		{"unknown dog", func(in *CreateBookingInput) { in.DogIDs = []uint{7, 77} }, "dog_not_owned"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := uc.Execute(context.Background(), in)
			assert.True(t, httperr.IsBusiness(err, tt.wantCode),
				"want %s, got %v", tt.wantCode, err)
			assert.Empty(t, repo.bookings, "nothing persisted on rejection")
		})
	}
}

func TestCreateBookingCapacityExceeded(t *testing.T) {
	repo := newFakeRepo()
	slot := seedSlot(repo) // MaxCapacity 3
	for id := uint(1); id <= 4; id++ {
		repo.addDog(id, 200)
	}

	uc, _, _ := newCreateBookingUC(repo)
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		OwnerID:       200,
		SlotID:        slot.ID,
		DogIDs:        []uint{1, 2, 3, 4},
		PickupAddress: "12 Maple St",
	})
	assert.True(t, httperr.IsBusiness(err, "capacity_exceeded"))
}

// The admission transaction re-validates capacity against the locked slot
// row, so it holds even without the usecase's advisory read.
func TestCreateBookingAdmissionRechecksCapacity(t *testing.T) {
	repo := newFakeRepo()
	slot := seedSlot(repo) // MaxCapacity 3

	b := &models.Booking{SlotID: slot.ID, OwnerID: 200, Status: "pending"}
	intent := &models.PaymentIntent{Reference: "ref-1"}

	err := repo.CreateBooking(context.Background(), b, []uint{1, 2, 3, 4}, intent)
	assert.True(t, httperr.IsBusiness(err, "capacity_exceeded"))
	assert.Empty(t, repo.bookings)
}

func TestCreateBookingSlotAlreadyBooked(t *testing.T) {
	repo := newFakeRepo()
	slot := seedSlot(repo)
	repo.addDog(7, 200)
	repo.addDog(8, 300)
	repo.addBooking(models.Booking{SlotID: slot.ID, OwnerID: 300, Status: "pending"}, 8)

	uc, _, _ := newCreateBookingUC(repo)
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		OwnerID:       200,
		SlotID:        slot.ID,
		DogIDs:        []uint{7},
		PickupAddress: "12 Maple St",
	})
	assert.True(t, httperr.IsBusiness(err, "slot_already_booked"))
}

func TestCreateBookingAfterCancellationSucceeds(t *testing.T) {
	repo := newFakeRepo()
	slot := seedSlot(repo)
	repo.addDog(7, 200)
	repo.addDog(8, 300)
	repo.addBooking(models.Booking{SlotID: slot.ID, OwnerID: 300, Status: "cancelled"}, 8)

	uc, _, _ := newCreateBookingUC(repo)
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		OwnerID:       200,
		SlotID:        slot.ID,
		DogIDs:        []uint{7},
		PickupAddress: "12 Maple St",
	})
	assert.NoError(t, err, "cancelled booking frees the slot")
}

// Two owners race for the same slot; exactly one booking must win.
func TestCreateBookingConcurrentAdmission(t *testing.T) {
	repo := newFakeRepo()
	slot := seedSlot(repo)
	repo.addDog(7, 200)
	repo.addDog(8, 300)

	uc, _, _ := newCreateBookingUC(repo)

	inputs := []CreateBookingInput{
		{OwnerID: 200, SlotID: slot.ID, DogIDs: []uint{7}, PickupAddress: "12 Maple St"},
		{OwnerID: 300, SlotID: slot.ID, DogIDs: []uint{8}, PickupAddress: "9 Oak Ave"},
	}

	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), inputs[i])
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case httperr.IsBusiness(err, "slot_already_booked"):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)
	assert.Len(t, repo.bookings, 1)
}
