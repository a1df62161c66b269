package booking

import (
	"time"

	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ActorFor resolves the role an authenticated user plays on a booking by
// comparing ids, never by trusting a client-supplied role.
func ActorFor(b *models.Booking, slotWalkerID uint, actorID uint) (Actor, error) {
	switch actorID {
	case b.OwnerID:
		return ActorOwner, nil
	case slotWalkerID:
		return ActorWalker, nil
	}
	return "", httperr.ErrBusiness("forbidden")
}

// Transition applies a status change in place after checking the state
// machine. Terminal timestamps are stamped from the injected now.
func Transition(b *models.Booking, to Status, actor Actor, now time.Time) error {
	if err := CanTransition(Status(b.Status), to, actor); err != nil {
		return err
	}

	b.Status = string(to)
	switch to {
	case StatusCancelled:
		b.CancelledAt = &now
	case StatusFinished:
		b.FinishedAt = &now
	}
	return nil
}
