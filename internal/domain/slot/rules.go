package slot

import (
	"time"

	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
)

func ValidWalkType(t string) bool {
	return t == models.WalkTypeGroup || t == models.WalkTypeIndividual
}

// ValidateNew checks a slot about to be created. Capacity defaults rather
// than rejects when unset.
func ValidateNew(s *models.Slot, now time.Time) error {
	if !ValidWalkType(s.WalkType) {
		return httperr.ErrBusiness("invalid_walk_type")
	}
	if s.DurationMin <= 0 {
		return httperr.ErrBusiness("invalid_duration")
	}
	if s.MaxCapacity == 0 {
		s.MaxCapacity = models.DefaultSlotCapacity
	}
	if s.MaxCapacity < 1 {
		return httperr.ErrBusiness("invalid_capacity")
	}
	if s.StartTime.IsZero() {
		return httperr.ErrBusiness("missing_start_time")
	}
	if !s.StartTime.After(now) {
		return httperr.ErrBusiness("start_time_in_past")
	}
	if s.Price < 0 {
		return httperr.ErrBusiness("invalid_price")
	}
	return nil
}
