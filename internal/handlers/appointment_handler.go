package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowpoint/salon-scheduler/internal/domain/schedule"
	"github.com/glowpoint/salon-scheduler/internal/dto"
	"github.com/glowpoint/salon-scheduler/internal/httperr"
	"github.com/glowpoint/salon-scheduler/internal/httpresp"
	"github.com/glowpoint/salon-scheduler/internal/middleware"
	"github.com/glowpoint/salon-scheduler/internal/models"
	"github.com/glowpoint/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db           *gorm.DB
	create       *booking.CreateBooking
	updateStatus *booking.UpdateStatus
	bulkStatus   *booking.BulkUpdateStatus
}

func NewAppointmentHandler(
	db *gorm.DB,
	create *booking.CreateBooking,
	updateStatus *booking.UpdateStatus,
	bulkStatus *booking.BulkUpdateStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		create:       create,
		updateStatus: updateStatus,
		bulkStatus:   bulkStatus,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID       uint   `json:"service_id" binding:"required"`
	CosmetologistID *uint  `json:"cosmetologist_id"`
	StartDateTime   string `json:"start_date_time" binding:"required"`
	Notes           string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BulkStatusRequest struct {
	AppointmentIDs []uint `json:"appointment_ids" binding:"required"`
	Status         string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_input", "Invalid request body.")
		return
	}

	start, err := parseDateTime(req.StartDateTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "start_date_time must be an RFC 3339 instant.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), time.Now().UTC(), booking.CreateBookingInput{
		CustomerID:      customerID,
		ServiceID:       req.ServiceID,
		CosmetologistID: req.CosmetologistID,
		StartDateTime:   start,
		Notes:           req.Notes,
	})
	if err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_create_appointment", "Failed to create appointment.")
		}
		return
	}

	h.respondWithDTO(c, ap, httpresp.Created)
}

// ======================================================
// LIST (staff)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	q := h.db.
		Preload("Customer").
		Preload("Service").
		Preload("Cosmetologist")

	if raw := c.Query("from"); raw != "" {
		from, err := parseDateTime(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_time", "from must be an RFC 3339 instant.")
			return
		}
		q = q.Where("start_date_time >= ?", from)
	}

	if raw := c.Query("to"); raw != "" {
		to, err := parseDateTime(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_time", "to must be an RFC 3339 instant.")
			return
		}
		q = q.Where("start_date_time <= ?", to)
	}

	if raw := c.Query("status"); raw != "" {
		status, err := schedule.ParseStatus(raw)
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		q = q.Where("status = ?", string(status))
	}

	if raw := c.Query("cosmetologist_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_input", "cosmetologist_id must be a positive integer.")
			return
		}
		q = q.Where("cosmetologist_id = ?", uint(id))
	}

	var aps []models.Appointment
	if err := q.Order("start_date_time ASC").Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	h.respondWithDTOs(c, aps)
}

// ======================================================
// LIST (own bookings)
// ======================================================

func (h *AppointmentHandler) ListMy(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var aps []models.Appointment
	if err := h.db.
		Preload("Customer").
		Preload("Service").
		Preload("Cosmetologist").
		Where("customer_id = ?", customerID).
		Order("start_date_time ASC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	h.respondWithDTOs(c, aps)
}

// ======================================================
// DETAIL
// ======================================================

func (h *AppointmentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	var ap models.Appointment
	if err := h.db.
		Preload("Customer").
		Preload("Service").
		Preload("Cosmetologist").
		First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if role == models.RoleCustomer && ap.CustomerID != userID {
		httperr.Forbidden(c, "forbidden", "You may only view your own appointments.")
		return
	}

	h.respondWithDTO(c, &ap, httpresp.OK)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_input", "status is required.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), actorID, id, req.Status)
	if err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_update_status", "Failed to update appointment status.")
		}
		return
	}

	h.respondWithDTO(c, ap, httpresp.OK)
}

func (h *AppointmentHandler) BulkStatus(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_input", "appointment_ids and status are required.")
		return
	}

	updated, err := h.bulkStatus.Execute(c.Request.Context(), actorID, req.AppointmentIDs, req.Status)
	if err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_update_status", "Failed to update appointment statuses.")
		}
		return
	}

	httpresp.OK(c, gin.H{"updated": updated})
}

// ======================================================
// CANCEL (customer, own pending booking)
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if ap.CustomerID != customerID {
		httperr.Forbidden(c, "forbidden", "You may only cancel your own appointments.")
		return
	}

	// Customers can abandon a booking only before staff confirm it;
	// confirmed appointments are cancelled by staff.
	if schedule.Status(ap.Status) != schedule.StatusPending {
		httperr.BadRequest(c, "invalid_transition", "Only pending appointments can be cancelled.")
		return
	}

	if _, err := h.updateStatus.Execute(
		c.Request.Context(), customerID, ap.ID, string(schedule.StatusCancelled),
	); err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_update_status", "Failed to cancel appointment.")
		}
		return
	}

	c.Status(204)
}

// ======================================================
// HELPERS
// ======================================================

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_input", "id must be a positive integer.")
		return 0, false
	}
	return uint(id), true
}

func (h *AppointmentHandler) respondWithDTO(
	c *gin.Context,
	ap *models.Appointment,
	respond func(*gin.Context, any),
) {
	out, err := dto.NewAppointmentDTO(ap)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	respond(c, out)
}

func (h *AppointmentHandler) respondWithDTOs(c *gin.Context, aps []models.Appointment) {
	out, err := dto.NewAppointmentDTOs(aps)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.List(c, out)
}
