package booking

import (
	"context"
	"testing"

	"github.com/glowpoint/salon-scheduler/internal/domain/schedule"
	"github.com/glowpoint/salon-scheduler/internal/httperr"
	"github.com/glowpoint/salon-scheduler/internal/models"
)

func seedAppointment(repo *fakeRepo, status schedule.Status) uint {
	repo.nextID++
	id := repo.nextID
	cos := uint(cosmetologistID)
	repo.appointments[id] = &models.Appointment{
		ID:              id,
		CustomerID:      customerID,
		ServiceID:       serviceID,
		CosmetologistID: &cos,
		StartDateTime:   utc(2026, 6, 1, 10, 0),
		Status:          string(status),
		Service:         *repo.services[serviceID],
	}
	return id
}

func setupStatus(t *testing.T) (*fakeRepo, *UpdateStatus, *BulkUpdateStatus) {
	t.Helper()
	repo := newFakeRepo()
	repo.addService(serviceID, 60, true)
	return repo, NewUpdateStatus(repo, nil), NewBulkUpdateStatus(repo, nil)
}

func TestUpdateStatusConfirm(t *testing.T) {
	repo, uc, _ := setupStatus(t)
	id := seedAppointment(repo, schedule.StatusPending)

	ap, err := uc.Execute(context.Background(), 1, id, "confirmed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schedule.Status(ap.Status) != schedule.StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", ap.Status)
	}
	if got := repo.appointments[id].Status; got != string(schedule.StatusConfirmed) {
		t.Fatalf("persisted status = %s, want confirmed", got)
	}
}

func TestUpdateStatusPendingToCompletedRejected(t *testing.T) {
	repo, uc, _ := setupStatus(t)
	id := seedAppointment(repo, schedule.StatusPending)

	// Completion requires going through confirmed first.
	_, err := uc.Execute(context.Background(), 1, id, "completed")
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
	if got := repo.appointments[id].Status; got != string(schedule.StatusPending) {
		t.Fatalf("status must be unchanged, got %s", got)
	}
}

func TestUpdateStatusNormalizesBoundaryValues(t *testing.T) {
	repo, uc, _ := setupStatus(t)

	// Numeric code for confirmed.
	id := seedAppointment(repo, schedule.StatusPending)
	if _, err := uc.Execute(context.Background(), 1, id, "1"); err != nil {
		t.Fatalf("numeric status: unexpected error %v", err)
	}

	// Mixed-case name.
	id2 := seedAppointment(repo, schedule.StatusPending)
	if _, err := uc.Execute(context.Background(), 1, id2, "Cancelled"); err != nil {
		t.Fatalf("mixed-case status: unexpected error %v", err)
	}
}

func TestUpdateStatusUnknownAppointment(t *testing.T) {
	_, uc, _ := setupStatus(t)

	_, err := uc.Execute(context.Background(), 1, 42, "confirmed")
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestBulkUpdateStatusAllValid(t *testing.T) {
	repo, _, bulk := setupStatus(t)
	a := seedAppointment(repo, schedule.StatusPending)
	b := seedAppointment(repo, schedule.StatusPending)

	updated, err := bulk.Execute(context.Background(), 1, []uint{a, b}, "confirmed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 2 {
		t.Fatalf("updated = %d, want 2", updated)
	}
	for _, id := range []uint{a, b} {
		if got := repo.appointments[id].Status; got != string(schedule.StatusConfirmed) {
			t.Errorf("appointment %d: status = %s, want confirmed", id, got)
		}
	}
}

func TestBulkUpdateStatusIsAtomic(t *testing.T) {
	repo, _, bulk := setupStatus(t)
	a := seedAppointment(repo, schedule.StatusPending)
	b := seedAppointment(repo, schedule.StatusCompleted) // terminal

	_, err := bulk.Execute(context.Background(), 1, []uint{a, b}, "cancelled")
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition, got %v", err)
	}

	// One invalid transition leaves the whole batch untouched.
	if got := repo.appointments[a].Status; got != string(schedule.StatusPending) {
		t.Errorf("appointment %d: status = %s, want pending", a, got)
	}
	if got := repo.appointments[b].Status; got != string(schedule.StatusCompleted) {
		t.Errorf("appointment %d: status = %s, want completed", b, got)
	}
}

func TestBulkUpdateStatusRejectsMissingIDs(t *testing.T) {
	repo, _, bulk := setupStatus(t)
	a := seedAppointment(repo, schedule.StatusPending)

	_, err := bulk.Execute(context.Background(), 1, []uint{a, 99}, "confirmed")
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
	if got := repo.appointments[a].Status; got != string(schedule.StatusPending) {
		t.Errorf("appointment %d: status = %s, want pending", a, got)
	}
}

func TestBulkUpdateStatusRejectsEmptyBatch(t *testing.T) {
	_, _, bulk := setupStatus(t)

	_, err := bulk.Execute(context.Background(), 1, nil, "confirmed")
	if !httperr.IsBusiness(err, "invalid_input") {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}
