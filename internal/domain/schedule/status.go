package schedule

import (
	"fmt"
	"strings"

	"github.com/glowpoint/salon-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// validTransitions is the whole state machine. Completed and cancelled are
// terminal, and re-submitting the current status is not a transition.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Validations
// ===============================

// ValidateTransition accepts or rejects a proposed status change. Rejections
// always name the attempted from/to pair.
func ValidateTransition(current, requested Status) error {
	for _, allowed := range validTransitions[current] {
		if requested == allowed {
			return nil
		}
	}
	return httperr.ErrBusinessMsg(
		"invalid_transition",
		fmt.Sprintf("Cannot transition from %s to %s.", current, requested),
	)
}

// ParseStatus normalizes a boundary value into a Status. It accepts the
// status name in any case, or the numeric code older clients send
// (0=pending, 1=confirmed, 2=completed, 3=cancelled).
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "0":
		return StatusPending, nil
	case "confirmed", "1":
		return StatusConfirmed, nil
	case "completed", "2":
		return StatusCompleted, nil
	case "cancelled", "3":
		return StatusCancelled, nil
	}
	return "", httperr.ErrBusinessMsg(
		"invalid_status",
		fmt.Sprintf("Invalid status value: %s", raw),
	)
}
