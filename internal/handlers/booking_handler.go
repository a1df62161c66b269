package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/httpresp"
	"github.com/waggytails/walk-scheduler/internal/middleware"
	ucBooking "github.com/waggytails/walk-scheduler/internal/usecase/booking"
)

type BookingHandler struct {
	createUC *ucBooking.CreateBooking
	statusUC *ucBooking.UpdateStatus
	cancelUC *ucBooking.CancelAsOwner
	listUC   *ucBooking.ListMine
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	statusUC *ucBooking.UpdateStatus,
	cancelUC *ucBooking.CancelAsOwner,
	listUC *ucBooking.ListMine,
) *BookingHandler {
	return &BookingHandler{
		createUC: createUC,
		statusUC: statusUC,
		cancelUC: cancelUC,
		listUC:   listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	SlotID        uint   `json:"slot_id" binding:"required"`
	DogIDs        []uint `json:"dog_ids" binding:"required,min=1"`
	PickupAddress string `json:"pickup_address" binding:"required"`
	Note          string `json:"note"`
	PaymentMethod string `json:"payment_method"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		OwnerID:       ownerID,
		SlotID:        req.SlotID,
		DogIDs:        req.DogIDs,
		PickupAddress: req.PickupAddress,
		Note:          req.Note,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	bookings, err := h.listUC.Execute(c.Request.Context(), userID, role)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	b, err := h.statusUC.Execute(c.Request.Context(), actorID, uint(bookingID), req.Status)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), ownerID, uint(bookingID))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, b)
}
