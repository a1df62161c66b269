package slot

import (
	"time"

	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
)

// Patch is a partial slot update; nil fields are left untouched.
type Patch struct {
	WalkType    *string
	Price       *float64
	DurationMin *int
	StartTime   *time.Time
	Location    *string
	MaxCapacity *int
}

// TouchesSchedule reports whether the patch would move or resize the walk
// window. Those fields freeze once any non-cancelled booking exists.
func (p Patch) TouchesSchedule() bool {
	return p.StartTime != nil || p.DurationMin != nil
}

func Apply(s *models.Slot, p Patch, now time.Time) error {
	if p.WalkType != nil {
		if !ValidWalkType(*p.WalkType) {
			return httperr.ErrBusiness("invalid_walk_type")
		}
		s.WalkType = *p.WalkType
	}
	if p.Price != nil {
		if *p.Price < 0 {
			return httperr.ErrBusiness("invalid_price")
		}
		s.Price = *p.Price
	}
	if p.DurationMin != nil {
		if *p.DurationMin <= 0 {
			return httperr.ErrBusiness("invalid_duration")
		}
		s.DurationMin = *p.DurationMin
	}
	if p.StartTime != nil {
		if !p.StartTime.After(now) {
			return httperr.ErrBusiness("start_time_in_past")
		}
		s.StartTime = p.StartTime.UTC()
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.MaxCapacity != nil {
		if *p.MaxCapacity < 1 {
			return httperr.ErrBusiness("invalid_capacity")
		}
		s.MaxCapacity = *p.MaxCapacity
	}
	return nil
}
