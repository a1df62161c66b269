package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/waggytails/walk-scheduler/internal/domain/booking"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/httpresp"
	ucAvailability "github.com/waggytails/walk-scheduler/internal/usecase/availability"
)

type AvailabilityHandler struct {
	queryUC *ucAvailability.Query
}

func NewAvailabilityHandler(queryUC *ucAvailability.Query) *AvailabilityHandler {
	return &AvailabilityHandler{queryUC: queryUC}
}

// Browse answers GET /public/slots?from=...&to=... with optional location,
// max_price and walk_type filters. Dates are RFC 3339 or plain YYYY-MM-DD.
func (h *AvailabilityHandler) Browse(c *gin.Context) {
	from, err := parseQueryTime(c.Query("from"), false)
	if err != nil {
		httperr.BadRequest(c, "invalid_from", "Invalid 'from' date.")
		return
	}
	to, err := parseQueryTime(c.Query("to"), true)
	if err != nil {
		httperr.BadRequest(c, "invalid_to", "Invalid 'to' date.")
		return
	}

	f := domain.AvailabilityFilter{
		From:     from,
		To:       to,
		Location: c.Query("location"),
		WalkType: c.Query("walk_type"),
	}

	if raw := c.Query("max_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_max_price", "Invalid price ceiling.")
			return
		}
		f.MaxPrice = &price
	}

	slots, err := h.queryUC.Execute(c.Request.Context(), f)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, slots)
}

func parseQueryTime(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t.UTC(), nil
}
