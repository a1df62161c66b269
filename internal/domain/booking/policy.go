package booking

import (
	"time"

	"github.com/waggytails/walk-scheduler/internal/models"
)

// CancellationNotice is the minimum lead an owner must give before the walk
// starts to cancel on their own.
const CancellationNotice = 24 * time.Hour

func IsCancellable(b *models.Booking, now time.Time) bool {
	return b.WalkStartTime.Sub(now) >= CancellationNotice
}
