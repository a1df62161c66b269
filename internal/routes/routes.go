package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/waggytails/walk-scheduler/internal/audit"
	"github.com/waggytails/walk-scheduler/internal/calendar"
	"github.com/waggytails/walk-scheduler/internal/clock"
	"github.com/waggytails/walk-scheduler/internal/config"
	"github.com/waggytails/walk-scheduler/internal/handlers"
	infraRepo "github.com/waggytails/walk-scheduler/internal/infra/repository"
	"github.com/waggytails/walk-scheduler/internal/middleware"
	"github.com/waggytails/walk-scheduler/internal/models"
	"github.com/waggytails/walk-scheduler/internal/notify"
	"github.com/waggytails/walk-scheduler/internal/payment"
	"github.com/waggytails/walk-scheduler/internal/storage"
	ucAvailability "github.com/waggytails/walk-scheduler/internal/usecase/availability"
	ucBooking "github.com/waggytails/walk-scheduler/internal/usecase/booking"
	ucReview "github.com/waggytails/walk-scheduler/internal/usecase/review"
	ucSlot "github.com/waggytails/walk-scheduler/internal/usecase/slot"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	slotRepo := infraRepo.NewSlotGormRepository(db)
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	clk := clock.System()

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	calendarDispatcher := calendar.NewDispatcher(newCalendarAdapter(cfg, log), slotRepo, log)
	payments := newPaymentAdapter(cfg, log)
	events := newPublisher(cfg, log)

	uploader := storage.NewUploader(cfg)

	// ======================================================
	// USE CASES
	// ======================================================
	createSlotUC := ucSlot.NewCreateSlot(slotRepo, clk, auditDispatcher, calendarDispatcher)
	updateSlotUC := ucSlot.NewUpdateSlot(slotRepo, clk, auditDispatcher, calendarDispatcher)
	deleteSlotUC := ucSlot.NewDeleteSlot(slotRepo, clk, auditDispatcher, calendarDispatcher, events, log)
	listSlotsUC := ucSlot.NewListByWalker(slotRepo)

	queryUC := ucAvailability.NewQuery(bookingRepo, clk)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo, clk, auditDispatcher, calendarDispatcher, payments, events, log,
	)
	updateStatusUC := ucBooking.NewUpdateStatus(
		bookingRepo, clk, auditDispatcher, calendarDispatcher, events, log,
	)
	cancelAsOwnerUC := ucBooking.NewCancelAsOwner(bookingRepo, clk, updateStatusUC)
	listBookingsUC := ucBooking.NewListMine(bookingRepo)

	submitReviewUC := ucReview.NewSubmitReview(bookingRepo, clk, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	dogHandler := handlers.NewDogHandler(db, uploader)
	slotHandler := handlers.NewSlotHandler(createSlotUC, updateSlotUC, deleteSlotUC, listSlotsUC)
	availabilityHandler := handlers.NewAvailabilityHandler(queryUC)
	bookingHandler := handlers.NewBookingHandler(createBookingUC, updateStatusUC, cancelAsOwnerUC, listBookingsUC)
	reviewHandler := handlers.NewReviewHandler(submitReviewUC)

	// ======================================================
	// ROUTES
	// ======================================================
	api := r.Group("/api")

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		api.Use(middleware.RateLimit(rdb, 120, time.Minute))
	}

	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/public/slots", availabilityHandler.Browse)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			asWalker := secured.Group("/me", middleware.RequireRole(models.RoleWalker))
			{
				asWalker.GET("/slots", slotHandler.ListMine)
				asWalker.POST("/slots", slotHandler.Create)
				asWalker.PATCH("/slots/:id", slotHandler.Update)
				asWalker.DELETE("/slots/:id", slotHandler.Delete)
			}

			asOwner := secured.Group("/me", middleware.RequireRole(models.RoleOwner))
			{
				asOwner.GET("/dogs", dogHandler.List)
				asOwner.POST("/dogs", dogHandler.Create)
				asOwner.POST("/dogs/:id/photo", dogHandler.UploadPhoto)

				asOwner.POST("/bookings", bookingHandler.Create)
				asOwner.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
				asOwner.POST("/bookings/:id/review", reviewHandler.Submit)
			}

			// either role
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.PATCH("/me/bookings/:id/status", bookingHandler.UpdateStatus)
		}
	}
}

// ------------------------------
// External collaborators. All degrade to no-ops when unconfigured.
// ------------------------------

func newCalendarAdapter(cfg *config.Config, log *zap.Logger) calendar.Adapter {
	if cfg.GoogleCredentialsFile == "" {
		return calendar.Noop{}
	}

	adapter, err := calendar.NewGoogleAdapter(
		context.Background(),
		cfg.GoogleCredentialsFile,
		cfg.GoogleCalendarID,
	)
	if err != nil {
		log.Warn("google calendar unavailable, sync disabled", zap.Error(err))
		return calendar.Noop{}
	}
	return adapter
}

func newPaymentAdapter(cfg *config.Config, log *zap.Logger) payment.Adapter {
	if cfg.MercadoPagoToken == "" {
		return payment.Offline{}
	}

	adapter, err := payment.NewMercadoPagoAdapter(cfg.MercadoPagoToken)
	if err != nil {
		log.Warn("mercadopago unavailable, payments offline", zap.Error(err))
		return payment.Offline{}
	}
	return adapter
}

func newPublisher(cfg *config.Config, log *zap.Logger) notify.Publisher {
	if cfg.RabbitURL == "" {
		return notify.Noop{}
	}

	broker, err := notify.NewBroker(cfg.RabbitURL, cfg.RabbitExchange)
	if err != nil {
		log.Warn("rabbitmq unavailable, notifications disabled", zap.Error(err))
		return notify.Noop{}
	}
	return broker
}
