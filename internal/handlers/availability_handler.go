package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/glowpoint/salon-scheduler/internal/httperr"
	"github.com/glowpoint/salon-scheduler/internal/httpresp"
	"github.com/glowpoint/salon-scheduler/internal/usecase/booking"
)

type AvailabilityHandler struct {
	availability *booking.GetAvailability
}

func NewAvailabilityHandler(availability *booking.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// GetSlots lists the day's candidate slots for a service, each marked
// available or not. GET /api/availability?date&service_id&cosmetologist_id
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "invalid_input", "date is required.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_input", "date must be formatted YYYY-MM-DD.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil || serviceID == 0 {
		httperr.BadRequest(c, "invalid_input", "service_id is required.")
		return
	}

	in := booking.AvailabilityInput{
		Date:      date,
		ServiceID: uint(serviceID),
	}

	if raw := c.Query("cosmetologist_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			httperr.BadRequest(c, "invalid_input", "cosmetologist_id must be a positive integer.")
			return
		}
		cosID := uint(id)
		in.CosmetologistID = &cosID
	}

	slots, err := h.availability.Execute(c.Request.Context(), time.Now().UTC(), in)
	if err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_get_availability", "Failed to compute availability.")
		}
		return
	}

	httpresp.List(c, slots)
}
