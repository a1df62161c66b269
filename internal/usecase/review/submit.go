package review

import (
	"context"

	"github.com/waggytails/walk-scheduler/internal/audit"
	"github.com/waggytails/walk-scheduler/internal/clock"
	domain "github.com/waggytails/walk-scheduler/internal/domain/booking"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

type SubmitReview struct {
	repo  domain.Repository
	clock clock.Clock
	audit Auditor
}

func NewSubmitReview(
	repo domain.Repository,
	clk clock.Clock,
	auditor Auditor,
) *SubmitReview {
	return &SubmitReview{
		repo:  repo,
		clock: clk,
		audit: auditor,
	}
}

func (uc *SubmitReview) Execute(
	ctx context.Context,
	ownerID uint,
	bookingID uint,
	rating int,
	comment string,
) (*models.Review, error) {

	if !domain.ValidRating(rating) {
		return nil, httperr.ErrBusiness("invalid_rating")
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	hasReview, err := uc.repo.HasReview(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanReview(b, ownerID, hasReview, uc.clock.Now()); err != nil {
		return nil, err
	}

	r := &models.Review{
		BookingID: bookingID,
		Rating:    rating,
		Comment:   comment,
	}

	// The unique index on reviews(booking_id) turns a racing duplicate
	// into duplicate_review at the persistence boundary.
	if err := uc.repo.CreateReview(ctx, r); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &ownerID,
		Action:   "review_submitted",
		Entity:   "review",
		EntityID: &r.ID,
	})

	return r, nil
}
