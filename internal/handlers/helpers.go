package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/glowpoint/salon-scheduler/internal/httperr"
)

// All scheduling runs in UTC; clients send RFC 3339 instants and plain
// calendar dates.

func parseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func parseDateTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// writeBusinessError maps a rejection to its transport status. Returns false
// when err is not a business error and the caller must handle it itself.
func writeBusinessError(c *gin.Context, err error) bool {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		return false
	}

	switch be.Code {
	case "appointment_not_found", "service_not_found":
		httperr.NotFound(c, be.Code, be.Error())
	case "slot_conflict":
		httperr.Conflict(c, be.Code, be.Error())
	case "corrupt_appointment", "corrupt_service":
		httperr.Internal(c, be.Code, be.Error())
	default:
		httperr.BadRequest(c, be.Code, be.Error())
	}
	return true
}
