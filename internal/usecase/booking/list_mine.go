package booking

import (
	"context"

	domain "github.com/waggytails/walk-scheduler/internal/domain/booking"
	"github.com/waggytails/walk-scheduler/internal/models"
)

type ListMine struct {
	repo domain.Repository
}

func NewListMine(repo domain.Repository) *ListMine {
	return &ListMine{repo: repo}
}

// Execute is role-aware: owners see the bookings they made, walkers see
// the bookings made against their slots.
func (uc *ListMine) Execute(
	ctx context.Context,
	userID uint,
	role string,
) ([]models.Booking, error) {

	if role == models.RoleWalker {
		return uc.repo.ListByWalker(ctx, userID)
	}
	return uc.repo.ListByOwner(ctx, userID)
}
