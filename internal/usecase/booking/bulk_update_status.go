package booking

import (
	"context"
	"fmt"

	"github.com/glowpoint/salon-scheduler/internal/audit"
	"github.com/glowpoint/salon-scheduler/internal/domain/schedule"
	"github.com/glowpoint/salon-scheduler/internal/httperr"
)

type BulkUpdateStatus struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewBulkUpdateStatus(
	repo schedule.Repository,
	auditor *audit.Dispatcher,
) *BulkUpdateStatus {
	return &BulkUpdateStatus{repo: repo, audit: auditor}
}

// Execute applies one status to a batch of appointments, all or nothing:
// every id must exist and every individual transition must be valid before
// any row is touched. Failing ids are named in the rejection.
func (uc *BulkUpdateStatus) Execute(
	ctx context.Context,
	actorID uint,
	ids []uint,
	rawStatus string,
) (int, error) {

	if len(ids) == 0 {
		return 0, httperr.ErrBusinessMsg("invalid_input", "appointment_ids must not be empty.")
	}

	requested, err := schedule.ParseStatus(rawStatus)
	if err != nil {
		return 0, err
	}

	aps, err := uc.repo.ListAppointmentsByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	found := make(map[uint]schedule.Status, len(aps))
	for _, ap := range aps {
		found[ap.ID] = schedule.Status(ap.Status)
	}

	var missing []uint
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return 0, httperr.ErrBusinessMsg(
			"appointment_not_found",
			fmt.Sprintf("Appointments not found: %v", missing),
		)
	}

	var invalid []uint
	for _, id := range ids {
		if schedule.ValidateTransition(found[id], requested) != nil {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return 0, httperr.ErrBusinessMsg(
			"invalid_transition",
			fmt.Sprintf("Invalid status transition to %s for appointments: %v", requested, invalid),
		)
	}

	if err := uc.repo.BulkUpdateAppointmentStatus(ctx, ids, requested); err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &actorID,
		Action: "appointment_bulk_status_updated",
		Entity: "appointment",
		Metadata: map[string]any{
			"status": string(requested),
			"ids":    ids,
		},
	})

	return len(ids), nil
}
