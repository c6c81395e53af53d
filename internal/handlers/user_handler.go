package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowpoint/salon-scheduler/internal/httperr"
	"github.com/glowpoint/salon-scheduler/internal/httpresp"
	"github.com/glowpoint/salon-scheduler/internal/middleware"
	"github.com/glowpoint/salon-scheduler/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	httpresp.OK(c, user)
}

type CosmetologistDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListCosmetologists is the public staff directory used by the booking form.
func (h *UserHandler) ListCosmetologists(c *gin.Context) {
	var out []CosmetologistDTO
	if err := h.db.
		Model(&models.User{}).
		Where("role = ?", models.RoleCosmetologist).
		Order("name ASC").
		Find(&out).Error; err != nil {
		httperr.Internal(c, "failed_to_list_cosmetologists", "Failed to list cosmetologists.")
		return
	}

	httpresp.List(c, out)
}
