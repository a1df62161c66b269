package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	slotdomain "github.com/waggytails/walk-scheduler/internal/domain/slot"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/httpresp"
	"github.com/waggytails/walk-scheduler/internal/middleware"
	ucSlot "github.com/waggytails/walk-scheduler/internal/usecase/slot"
)

type SlotHandler struct {
	createUC *ucSlot.CreateSlot
	updateUC *ucSlot.UpdateSlot
	deleteUC *ucSlot.DeleteSlot
	listUC   *ucSlot.ListByWalker
}

func NewSlotHandler(
	createUC *ucSlot.CreateSlot,
	updateUC *ucSlot.UpdateSlot,
	deleteUC *ucSlot.DeleteSlot,
	listUC *ucSlot.ListByWalker,
) *SlotHandler {
	return &SlotHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSlotRequest struct {
	WalkType    string    `json:"walk_type" binding:"required"`
	Price       float64   `json:"price"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Location    string    `json:"location"`
	MaxCapacity int       `json:"max_capacity"`
}

type UpdateSlotRequest struct {
	WalkType    *string    `json:"walk_type"`
	Price       *float64   `json:"price"`
	DurationMin *int       `json:"duration_min"`
	StartTime   *time.Time `json:"start_time"`
	Location    *string    `json:"location"`
	MaxCapacity *int       `json:"max_capacity"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *SlotHandler) Create(c *gin.Context) {
	walkerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid slot data.")
		return
	}

	s, err := h.createUC.Execute(c.Request.Context(), ucSlot.CreateSlotInput{
		WalkerID:    walkerID,
		WalkType:    req.WalkType,
		Price:       req.Price,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		MaxCapacity: req.MaxCapacity,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.Created(c, s)
}

func (h *SlotHandler) Update(c *gin.Context) {
	walkerID := c.MustGet(middleware.ContextUserID).(uint)

	slotID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_slot_id", "Invalid slot id.")
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid slot data.")
		return
	}

	s, err := h.updateUC.Execute(c.Request.Context(), walkerID, uint(slotID), slotdomain.Patch{
		WalkType:    req.WalkType,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		StartTime:   req.StartTime,
		Location:    req.Location,
		MaxCapacity: req.MaxCapacity,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *SlotHandler) Delete(c *gin.Context) {
	walkerID := c.MustGet(middleware.ContextUserID).(uint)

	slotID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_slot_id", "Invalid slot id.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), walkerID, uint(slotID)); err != nil {
		writeDomainError(c, err)
		return
	}

	c.Status(204)
}

func (h *SlotHandler) ListMine(c *gin.Context) {
	walkerID := c.MustGet(middleware.ContextUserID).(uint)

	slots, err := h.listUC.Execute(c.Request.Context(), walkerID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, slots)
}
