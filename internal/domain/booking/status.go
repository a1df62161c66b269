package booking

import "github.com/waggytails/walk-scheduler/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusFinished  Status = "finished"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusFinished:
		return true
	}
	return false
}

// ===============================
// Actors
// ===============================

type Actor string

const (
	ActorOwner  Actor = "owner"
	ActorWalker Actor = "walker"
)

// transitions maps every legal edge to the actors allowed to take it.
// cancelled and finished have no outgoing edges.
var transitions = map[Status]map[Status][]Actor{
	StatusPending: {
		StatusConfirmed: {ActorWalker},
		StatusCancelled: {ActorOwner, ActorWalker},
	},
	StatusConfirmed: {
		StatusCancelled: {ActorOwner, ActorWalker},
		StatusFinished:  {ActorWalker},
	},
}

// CanTransition reports whether actor may move a booking from one status to
// another. An edge missing from the table is invalid_transition regardless
// of the actor; an existing edge taken by the wrong actor is forbidden.
func CanTransition(from, to Status, actor Actor) error {
	allowed, ok := transitions[from][to]
	if !ok {
		return httperr.ErrBusiness("invalid_transition")
	}
	for _, a := range allowed {
		if a == actor {
			return nil
		}
	}
	return httperr.ErrBusiness("forbidden")
}
