package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/glowpoint/salon-scheduler/internal/audit"
	"github.com/glowpoint/salon-scheduler/internal/domain/schedule"
	"github.com/glowpoint/salon-scheduler/internal/httperr"
	"github.com/glowpoint/salon-scheduler/internal/models"
)

// Locker serializes the conflict-check-then-insert sequence per
// cosmetologist. Implemented by lock.Redis in production.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID      uint
	ServiceID       uint
	CosmetologistID *uint
	StartDateTime   time.Time
	Notes           string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  schedule.Repository
	hours schedule.BusinessHours
	locks Locker
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo schedule.Repository,
	hours schedule.BusinessHours,
	locks Locker,
	auditor *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		hours: hours,
		locks: locks,
		audit: auditor,
	}
}

// Execute validates and accepts a booking request. now is injected so tests
// stay deterministic; callers pass time.Now().UTC().
func (uc *CreateBooking) Execute(
	ctx context.Context,
	now time.Time,
	in CreateBookingInput,
) (*models.Appointment, error) {

	svc, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil || !svc.IsActive {
		return nil, httperr.ErrBusinessMsg("service_not_found", "Service not found or not available.")
	}
	if svc.DurationMinutes <= 0 {
		return nil, httperr.ErrBusinessMsg(
			"corrupt_service",
			fmt.Sprintf("Service %d has non-positive duration %d.", svc.ID, svc.DurationMinutes),
		)
	}

	start := in.StartDateTime.UTC()
	if !start.After(now) {
		return nil, httperr.ErrBusinessMsg("invalid_time", "Appointment date must be in the future.")
	}

	slot := schedule.NewInterval(start, svc.DurationMinutes)
	window := uc.hours.WindowFor(start)
	if slot.Start.Before(window.Start) || slot.End.After(window.End) {
		return nil, httperr.ErrBusinessMsg(
			"outside_business_hours",
			"The selected time is not within business hours.",
		)
	}

	if in.CosmetologistID != nil {
		cos, err := uc.repo.GetUserByID(ctx, *in.CosmetologistID)
		if err != nil || cos.Role != models.RoleCosmetologist {
			return nil, httperr.ErrBusinessMsg("invalid_cosmetologist", "Invalid cosmetologist.")
		}

		if uc.locks != nil {
			release, err := uc.locks.Acquire(ctx, fmt.Sprintf("booking:cosmetologist:%d", cos.ID))
			if err != nil {
				return nil, err
			}
			defer release()
		}

		existing, err := uc.repo.ListAppointmentsInWindow(ctx, cos.ID, slot.Start, slot.End)
		if err != nil {
			return nil, err
		}

		conflict, err := schedule.HasConflict(slot, existing, 0)
		if err != nil {
			return nil, err
		}
		if conflict {
			uc.auditConflict(in, cos.ID)
			return nil, httperr.ErrBusinessMsg(
				"slot_conflict",
				"This time slot is no longer available. Please choose another time.",
			)
		}
	}

	ap := &models.Appointment{
		CustomerID:      in.CustomerID,
		ServiceID:       svc.ID,
		CosmetologistID: in.CosmetologistID,
		StartDateTime:   slot.Start,
		Status:          string(schedule.InitialStatus()),
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap, slot); err != nil {
		// The slot can also be lost to a concurrent insert between the
		// pre-check and the transactional re-check.
		if httperr.IsBusiness(err, "slot_conflict") && in.CosmetologistID != nil {
			uc.auditConflict(in, *in.CosmetologistID)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CustomerID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointmentByID(ctx, ap.ID)
}

func (uc *CreateBooking) auditConflict(in CreateBookingInput, cosmetologistID uint) {
	uc.audit.Dispatch(audit.Event{
		UserID: &in.CustomerID,
		Action: "appointment_slot_conflict",
		Entity: "appointment",
		Metadata: map[string]any{
			"cosmetologist_id": cosmetologistID,
			"service_id":       in.ServiceID,
			"start_date_time":  in.StartDateTime,
		},
	})
}
