package booking

import (
	"time"

	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
)

// CanReview gates post-walk reviews. A finished booking may always be
// reviewed by its owner; a confirmed one only once the walk window has
// passed (the walker never pressed finish). Anything else is ineligible.
func CanReview(b *models.Booking, reviewerID uint, hasReview bool, now time.Time) error {
	if b.OwnerID != reviewerID {
		return httperr.ErrBusiness("forbidden")
	}

	switch Status(b.Status) {
	case StatusFinished:
		// ok
	case StatusConfirmed:
		if now.Before(b.WalkEndTime()) {
			return httperr.ErrBusiness("not_eligible")
		}
	default:
		return httperr.ErrBusiness("not_eligible")
	}

	if hasReview {
		return httperr.ErrBusiness("duplicate_review")
	}
	return nil
}

func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
