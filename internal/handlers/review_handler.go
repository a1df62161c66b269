package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/httpresp"
	"github.com/waggytails/walk-scheduler/internal/middleware"
	ucReview "github.com/waggytails/walk-scheduler/internal/usecase/review"
)

type ReviewHandler struct {
	submitUC *ucReview.SubmitReview
}

func NewReviewHandler(submitUC *ucReview.SubmitReview) *ReviewHandler {
	return &ReviewHandler{submitUC: submitUC}
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) Submit(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Rating is required.")
		return
	}

	r, err := h.submitUC.Execute(c.Request.Context(), ownerID, uint(bookingID), req.Rating, req.Comment)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.Created(c, r)
}
