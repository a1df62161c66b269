package booking

import (
	"time"

	"github.com/waggytails/walk-scheduler/internal/models"
)

type AvailabilityFilter struct {
	From time.Time
	To   time.Time

	// Case-insensitive substring against slot location or walker base
	// location; empty means no filter.
	Location string
	MaxPrice *float64
	WalkType string
}

// OpenSlot pairs a slot with its live booked-dog count. The count is always
// derived at read time from booking_dogs, never a stored counter.
type OpenSlot struct {
	models.Slot
	BookedDogs int `json:"booked_dogs"`
}
