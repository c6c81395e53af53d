package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/glowpoint/salon-scheduler/internal/domain/schedule"
	"github.com/glowpoint/salon-scheduler/internal/httperr"
	"github.com/glowpoint/salon-scheduler/internal/models"
)

// fakeRepo is an in-memory schedule.Repository.
type fakeRepo struct {
	services     map[uint]*models.Service
	users        map[uint]*models.User
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[uint]*models.Service{},
		users:        map[uint]*models.User{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (r *fakeRepo) addService(id uint, durationMinutes int, active bool) {
	r.services[id] = &models.Service{
		ID:              id,
		Name:            "Treatment",
		DurationMinutes: durationMinutes,
		Price:           50,
		IsActive:        active,
	}
}

func (r *fakeRepo) addUser(id uint, role string) {
	r.users[id] = &models.User{ID: id, Name: "User", Role: role}
}

func (r *fakeRepo) GetServiceByID(_ context.Context, id uint) (*models.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return svc, nil
}

func (r *fakeRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (r *fakeRepo) ListCosmetologistIDs(_ context.Context) ([]uint, error) {
	var ids []uint
	for id, u := range r.users {
		if u.Role == models.RoleCosmetologist {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeRepo) ListAppointmentsInWindow(
	_ context.Context, cosmetologistID uint, from, to time.Time,
) ([]models.Appointment, error) {

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.CosmetologistID == nil || *ap.CosmetologistID != cosmetologistID {
			continue
		}
		if schedule.Status(ap.Status) == schedule.StatusCancelled {
			continue
		}
		end := ap.StartDateTime.Add(time.Duration(ap.Service.DurationMinutes) * time.Minute)
		if ap.StartDateTime.Before(to) && end.After(from) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDateTime.Before(out[j].StartDateTime) })
	return out, nil
}

func (r *fakeRepo) CreateAppointment(
	ctx context.Context, ap *models.Appointment, slot schedule.Interval,
) error {

	if ap.CosmetologistID != nil {
		existing, _ := r.ListAppointmentsInWindow(ctx, *ap.CosmetologistID, slot.Start, slot.End)
		conflict, err := schedule.HasConflict(slot, existing, 0)
		if err != nil {
			return err
		}
		if conflict {
			return httperr.ErrBusiness("slot_conflict")
		}
	}

	r.nextID++
	ap.ID = r.nextID

	stored := *ap
	stored.Service = *r.services[ap.ServiceID]
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	out := *ap
	return &out, nil
}

func (r *fakeRepo) ListAppointmentsByIDs(_ context.Context, ids []uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, id := range ids {
		if ap, ok := r.appointments[id]; ok {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateAppointmentStatus(_ context.Context, id uint, status schedule.Status) error {
	ap, ok := r.appointments[id]
	if !ok {
		return errors.New("record not found")
	}
	ap.Status = string(status)
	return nil
}

func (r *fakeRepo) BulkUpdateAppointmentStatus(_ context.Context, ids []uint, status schedule.Status) error {
	for _, id := range ids {
		if err := r.UpdateAppointmentStatus(context.Background(), id, status); err != nil {
			return err
		}
	}
	return nil
}

var _ schedule.Repository = (*fakeRepo)(nil)

// Shared fixtures.

var testHours = schedule.BusinessHours{StartHour: 9, EndHour: 18, SlotIntervalMinutes: 30}

func utc(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func ptr(v uint) *uint { return &v }
