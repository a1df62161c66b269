package availability

import (
	"context"

	"github.com/waggytails/walk-scheduler/internal/clock"
	domain "github.com/waggytails/walk-scheduler/internal/domain/booking"
	slotdomain "github.com/waggytails/walk-scheduler/internal/domain/slot"
	"github.com/waggytails/walk-scheduler/internal/httperr"
)

type Query struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewQuery(repo domain.Repository, clk clock.Clock) *Query {
	return &Query{repo: repo, clock: clk}
}

// Execute lists slots an owner can still book: future start inside the
// requested window, live booked capacity below the cap, optional filters
// applied, ordered by start time.
func (uc *Query) Execute(
	ctx context.Context,
	f domain.AvailabilityFilter,
) ([]domain.OpenSlot, error) {

	if f.From.IsZero() || f.To.IsZero() || f.To.Before(f.From) {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}
	if f.WalkType != "" && !slotdomain.ValidWalkType(f.WalkType) {
		return nil, httperr.ErrBusiness("invalid_walk_type")
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return nil, httperr.ErrBusiness("invalid_price")
	}

	return uc.repo.ListOpenSlots(ctx, f, uc.clock.Now())
}
