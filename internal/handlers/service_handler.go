package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowpoint/salon-scheduler/internal/httperr"
	"github.com/glowpoint/salon-scheduler/internal/httpresp"
	"github.com/glowpoint/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type ServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" binding:"required"`
	Price           float64 `json:"price"`
}

func (r *ServiceRequest) validate(c *gin.Context) bool {
	if r.DurationMinutes <= 0 {
		httperr.BadRequest(c, "invalid_input", "duration_minutes must be greater than zero.")
		return false
	}
	if r.Price < 0 {
		httperr.BadRequest(c, "invalid_input", "price must be non-negative.")
		return false
	}
	return true
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil || !svc.IsActive {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_input", "name and duration_minutes are required.")
		return
	}
	if !req.validate(c) {
		return
	}

	svc := models.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Failed to create service.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_input", "name and duration_minutes are required.")
		return
	}
	if !req.validate(c) {
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.DurationMinutes = req.DurationMinutes
	svc.Price = req.Price

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Failed to update service.")
		return
	}

	httpresp.OK(c, svc)
}

// Delete deactivates; appointments keep their service reference.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if err := h.db.Model(&svc).Update("is_active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Failed to deactivate service.")
		return
	}

	c.Status(204)
}
