package dto

import (
	"fmt"
	"time"

	"github.com/glowpoint/salon-scheduler/internal/httperr"
	"github.com/glowpoint/salon-scheduler/internal/models"
)

type AppointmentDTO struct {
	ID                uint      `json:"id"`
	CustomerID        uint      `json:"customer_id"`
	CustomerName      string    `json:"customer_name"`
	ServiceID         uint      `json:"service_id"`
	ServiceName       string    `json:"service_name"`
	ServicePrice      float64   `json:"service_price"`
	CosmetologistID   *uint     `json:"cosmetologist_id,omitempty"`
	CosmetologistName *string   `json:"cosmetologist_name,omitempty"`
	StartDateTime     time.Time `json:"start_date_time"`
	EndDateTime       time.Time `json:"end_date_time"`
	DurationMinutes   int       `json:"duration_minutes"`
	Status            string    `json:"status"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewAppointmentDTO maps a fully loaded appointment. The end time exists
// only as start + service duration, so a record without its Service loaded
// is unmappable and reported as corruption instead of defaulted.
func NewAppointmentDTO(ap *models.Appointment) (AppointmentDTO, error) {
	if ap.Service.ID == 0 || ap.Service.DurationMinutes <= 0 {
		return AppointmentDTO{}, httperr.ErrBusinessMsg(
			"corrupt_appointment",
			fmt.Sprintf("Appointment %d has no usable service duration; cannot compute its end time.", ap.ID),
		)
	}

	out := AppointmentDTO{
		ID:              ap.ID,
		CustomerID:      ap.CustomerID,
		CustomerName:    ap.Customer.Name,
		ServiceID:       ap.ServiceID,
		ServiceName:     ap.Service.Name,
		ServicePrice:    ap.Service.Price,
		CosmetologistID: ap.CosmetologistID,
		StartDateTime:   ap.StartDateTime,
		EndDateTime:     ap.StartDateTime.Add(time.Duration(ap.Service.DurationMinutes) * time.Minute),
		DurationMinutes: ap.Service.DurationMinutes,
		Status:          ap.Status,
		Notes:           ap.Notes,
		CreatedAt:       ap.CreatedAt,
	}

	if ap.Cosmetologist != nil {
		out.CosmetologistName = &ap.Cosmetologist.Name
	}

	return out, nil
}

func NewAppointmentDTOs(aps []models.Appointment) ([]AppointmentDTO, error) {
	out := make([]AppointmentDTO, 0, len(aps))
	for i := range aps {
		d, err := NewAppointmentDTO(&aps[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
