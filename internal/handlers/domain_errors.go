package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/waggytails/walk-scheduler/internal/httperr"
)

var domainMessages = map[string]string{
	"slot_not_found":              "Slot not found.",
	"booking_not_found":           "Booking not found.",
	"slot_already_booked":         "Someone already booked this slot.",
	"capacity_exceeded":           "Too many dogs for this slot.",
	"slot_locked":                 "Slot schedule cannot change while bookings exist.",
	"slot_has_confirmed_booking":  "Slot has a confirmed booking and cannot be deleted.",
	"invalid_transition":          "This status change is not allowed.",
	"forbidden":                   "You are not allowed to do that.",
	"cancellation_window_passed":  "Cancellation is only possible up to 24 hours before the walk.",
	"duplicate_review":            "This booking was already reviewed.",
	"not_eligible":                "This booking cannot be reviewed yet.",
	"dog_not_owned":               "One or more dogs do not belong to you.",
	"invalid_rating":              "Rating must be between 1 and 5.",
	"invalid_date_range":          "Invalid date range.",
	"invalid_walk_type":           "Walk type must be group or individual.",
	"invalid_duration":            "Walk must end after it starts.",
	"invalid_capacity":            "Capacity must be at least 1.",
	"capacity_below_booked":       "Capacity cannot drop below the dogs already booked.",
	"invalid_price":               "Price cannot be negative.",
	"invalid_status":              "Unknown booking status.",
	"start_time_in_past":          "Slot must start in the future.",
	"missing_start_time":          "Start and end time are required.",
	"missing_dogs":                "At least one dog is required.",
	"missing_pickup_address":      "Pickup address is required.",
}

// writeDomainError translates a usecase failure: business codes keep their
// code on the wire with a matching status, anything else is a 500.
func writeDomainError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	if code == "" {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	msg, ok := domainMessages[code]
	if !ok {
		msg = "Request rejected."
	}

	switch code {
	case "slot_not_found", "booking_not_found":
		httperr.NotFound(c, code, msg)
	case "slot_already_booked", "duplicate_review":
		httperr.Conflict(c, code, msg)
	case "forbidden", "dog_not_owned":
		httperr.Forbidden(c, code, msg)
	default:
		httperr.BadRequest(c, code, msg)
	}
}
