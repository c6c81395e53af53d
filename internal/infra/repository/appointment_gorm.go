package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/glowpoint/salon-scheduler/internal/domain/schedule"
	"github.com/glowpoint/salon-scheduler/internal/httperr"
	"github.com/glowpoint/salon-scheduler/internal/models"
)

// Appointments carry no end column, so every interval predicate derives the
// end from the joined service duration.
const derivedOverlap = "appointments.start_date_time < ? AND " +
	"appointments.start_date_time + services.duration_minutes * INTERVAL '1 minute' > ?"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Service / User
// --------------------------------------------------

func (r *AppointmentGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AppointmentGormRepository) ListCosmetologistIDs(
	ctx context.Context,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleCosmetologist).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// --------------------------------------------------
// Appointment (conflict window)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsInWindow(
	ctx context.Context,
	cosmetologistID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where(
			"appointments.cosmetologist_id = ? AND appointments.status <> ?",
			cosmetologistID, schedule.StatusCancelled,
		).
		Where(derivedOverlap, to, from).
		Order("appointments.start_date_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

// CreateAppointment re-checks the slot and inserts in one transaction. A
// per-cosmetologist advisory lock plus FOR UPDATE on the overlapping rows
// keeps two concurrent requests from both passing the check and both
// inserting.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	slot schedule.Interval,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if ap.CosmetologistID != nil {
			cosID := *ap.CosmetologistID

			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(?)", int64(cosID),
			).Error; err != nil {
				return err
			}

			var conflicts []models.Appointment
			if err := tx.
				Clauses(clause.Locking{
					Strength: "UPDATE",
					Table:    clause.Table{Name: "appointments"},
				}).
				Joins("JOIN services ON services.id = appointments.service_id").
				Where(
					"appointments.cosmetologist_id = ? AND appointments.status <> ?",
					cosID, schedule.StatusCancelled,
				).
				Where(derivedOverlap, slot.End, slot.Start).
				Find(&conflicts).Error; err != nil {
				return err
			}

			if len(conflicts) > 0 {
				return httperr.ErrBusinessMsg(
					"slot_conflict",
					"This time slot is no longer available. Please choose another time.",
				)
			}
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Cosmetologist").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("id IN ?", ids).
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	id uint,
	status schedule.Status,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *AppointmentGormRepository) BulkUpdateAppointmentStatus(
	ctx context.Context,
	ids []uint,
	status schedule.Status,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.Appointment{}).
			Where("id IN ?", ids).
			Update("status", string(status)).Error
	})
}

// Compile-time check
var _ schedule.Repository = (*AppointmentGormRepository)(nil)
