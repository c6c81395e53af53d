package schedule

import (
	"context"
	"time"

	"github.com/glowpoint/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Service / User lookups --------
	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	ListCosmetologistIDs(
		ctx context.Context,
	) ([]uint, error)

	// -------- Appointment (conflict window) --------
	// Non-cancelled appointments for the cosmetologist whose derived
	// interval intersects [from, to), Service association loaded, ordered
	// by start time.
	ListAppointmentsInWindow(
		ctx context.Context,
		cosmetologistID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (create) --------
	// Re-checks the slot and inserts atomically with respect to other
	// bookings of the same cosmetologist.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		slot Interval,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointmentsByIDs(
		ctx context.Context,
		ids []uint,
	) ([]models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		id uint,
		status Status,
	) error

	// All or nothing.
	BulkUpdateAppointmentStatus(
		ctx context.Context,
		ids []uint,
		status Status,
	) error
}
