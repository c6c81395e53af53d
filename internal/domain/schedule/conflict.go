package schedule

import (
	"fmt"

	"github.com/glowpoint/salon-scheduler/internal/httperr"
	"github.com/glowpoint/salon-scheduler/internal/models"
)

// HasConflict tests a candidate interval against a cosmetologist's existing
// appointments. Cancelled appointments never block. Pass excludeID to ignore
// one appointment when re-validating it; zero excludes nothing.
//
// End times are recomputed from each appointment's Service duration. An
// appointment whose Service is missing or has a non-positive duration
// poisons the whole check: returning a guess would corrupt the result.
func HasConflict(candidate Interval, existing []models.Appointment, excludeID uint) (bool, error) {
	for _, ap := range existing {
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if Status(ap.Status) == StatusCancelled {
			continue
		}

		if ap.Service.ID == 0 || ap.Service.DurationMinutes <= 0 {
			return false, httperr.ErrBusinessMsg(
				"corrupt_appointment",
				fmt.Sprintf("Appointment %d has no usable service duration; cannot compute its end time.", ap.ID),
			)
		}

		if candidate.Overlaps(NewInterval(ap.StartDateTime, ap.Service.DurationMinutes)) {
			return true, nil
		}
	}
	return false, nil
}
