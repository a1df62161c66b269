package slot

import (
	"context"

	domain "github.com/waggytails/walk-scheduler/internal/domain/slot"
	"github.com/waggytails/walk-scheduler/internal/models"
)

type ListByWalker struct {
	repo domain.Repository
}

func NewListByWalker(repo domain.Repository) *ListByWalker {
	return &ListByWalker{repo: repo}
}

func (uc *ListByWalker) Execute(
	ctx context.Context,
	walkerID uint,
) ([]models.Slot, error) {
	return uc.repo.ListByWalker(ctx, walkerID)
}
