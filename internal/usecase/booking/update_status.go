package booking

import (
	"context"

	"github.com/glowpoint/salon-scheduler/internal/audit"
	"github.com/glowpoint/salon-scheduler/internal/domain/schedule"
	"github.com/glowpoint/salon-scheduler/internal/httperr"
	"github.com/glowpoint/salon-scheduler/internal/models"
)

type UpdateStatus struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo schedule.Repository,
	auditor *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{repo: repo, audit: auditor}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
	rawStatus string,
) (*models.Appointment, error) {

	requested, err := schedule.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg("appointment_not_found", "Appointment not found.")
	}

	if err := schedule.ValidateTransition(schedule.Status(ap.Status), requested); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, ap.ID, requested); err != nil {
		return nil, err
	}
	ap.Status = string(requested)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_status_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"status": string(requested)},
	})

	return ap, nil
}
