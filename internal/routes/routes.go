package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glowpoint/salon-scheduler/internal/audit"
	"github.com/glowpoint/salon-scheduler/internal/config"
	"github.com/glowpoint/salon-scheduler/internal/handlers"
	infraRepo "github.com/glowpoint/salon-scheduler/internal/infra/repository"
	"github.com/glowpoint/salon-scheduler/internal/lock"
	"github.com/glowpoint/salon-scheduler/internal/middleware"
	"github.com/glowpoint/salon-scheduler/internal/models"
	ucBooking "github.com/glowpoint/salon-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	bookingLocks := lock.NewRedis(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		appointmentRepo,
		cfg.BusinessHours,
		bookingLocks,
		auditDispatcher,
	)

	availabilityUC := ucBooking.NewGetAvailability(
		appointmentRepo,
		cfg.BusinessHours,
	)

	updateStatusUC := ucBooking.NewUpdateStatus(
		appointmentRepo,
		auditDispatcher,
	)

	bulkStatusUC := ucBooking.NewBulkUpdateStatus(
		appointmentRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createBookingUC,
		updateStatusUC,
		bulkStatusUC,
	)

	staffOnly := middleware.RequireRoles(models.RoleAdmin, models.RoleCosmetologist)
	customerOnly := middleware.RequireRoles(models.RoleCustomer)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.GetByID)
		api.GET("/users/cosmetologists", userHandler.ListCosmetologists)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/users/me", userHandler.GetMe)

			secured.GET("/availability", availabilityHandler.GetSlots)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", customerOnly, appointmentHandler.Create)
			secured.GET("/appointments", staffOnly, appointmentHandler.List)
			secured.GET("/appointments/my", customerOnly, appointmentHandler.ListMy)
			secured.PUT("/appointments/bulk-status", staffOnly, appointmentHandler.BulkStatus)
			secured.GET("/appointments/:id", appointmentHandler.GetByID)
			secured.PUT("/appointments/:id/status", staffOnly, appointmentHandler.UpdateStatus)
			secured.DELETE("/appointments/:id", customerOnly, appointmentHandler.Cancel)

			// ------------------------------
			// SERVICES (staff)
			// ------------------------------
			secured.POST("/services", staffOnly, serviceHandler.Create)
			secured.PUT("/services/:id", staffOnly, serviceHandler.Update)
			secured.DELETE("/services/:id", staffOnly, serviceHandler.Delete)
		}
	}
}
