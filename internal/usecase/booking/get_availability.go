package booking

import (
	"context"
	"time"

	"github.com/glowpoint/salon-scheduler/internal/domain/schedule"
	"github.com/glowpoint/salon-scheduler/internal/models"
)

type AvailabilityInput struct {
	Date            time.Time
	ServiceID       uint
	CosmetologistID *uint
}

type GetAvailability struct {
	repo  schedule.Repository
	hours schedule.BusinessHours
}

func NewGetAvailability(
	repo schedule.Repository,
	hours schedule.BusinessHours,
) *GetAvailability {
	return &GetAvailability{repo: repo, hours: hours}
}

// Execute enumerates the day's candidate slots for a service. A slot is
// available when at least one candidate cosmetologist is conflict-free for
// it. An unknown or inactive service and an empty candidate set both yield
// an empty list.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	now time.Time,
	in AvailabilityInput,
) ([]schedule.AvailableSlot, error) {

	svc, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil || !svc.IsActive {
		return []schedule.AvailableSlot{}, nil
	}

	var candidates []uint
	if in.CosmetologistID != nil {
		// Existence of the id is an upstream concern.
		candidates = []uint{*in.CosmetologistID}
	} else {
		candidates, err = uc.repo.ListCosmetologistIDs(ctx)
		if err != nil {
			return nil, err
		}
	}
	if len(candidates) == 0 {
		return []schedule.AvailableSlot{}, nil
	}

	// One window query per candidate instead of one conflict query per
	// slot per candidate.
	window := uc.hours.WindowFor(in.Date)
	busy := make(map[uint][]models.Appointment, len(candidates))
	for _, id := range candidates {
		existing, err := uc.repo.ListAppointmentsInWindow(ctx, id, window.Start, window.End)
		if err != nil {
			return nil, err
		}
		busy[id] = existing
	}

	conflictFree := func(slot schedule.Interval) (bool, error) {
		for _, id := range candidates {
			conflict, err := schedule.HasConflict(slot, busy[id], 0)
			if err != nil {
				return false, err
			}
			if !conflict {
				return true, nil
			}
		}
		return false, nil
	}

	return uc.hours.GenerateSlots(in.Date, svc.DurationMinutes, now, conflictFree)
}
