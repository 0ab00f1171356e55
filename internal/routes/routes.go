package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/PawshSuite/groom-scheduler/internal/audit"
	"github.com/PawshSuite/groom-scheduler/internal/billing"
	"github.com/PawshSuite/groom-scheduler/internal/config"
	"github.com/PawshSuite/groom-scheduler/internal/domain/reschedule"
	"github.com/PawshSuite/groom-scheduler/internal/handlers"
	infraRepo "github.com/PawshSuite/groom-scheduler/internal/infra/repository"
	"github.com/PawshSuite/groom-scheduler/internal/media"
	"github.com/PawshSuite/groom-scheduler/internal/middleware"
	"github.com/PawshSuite/groom-scheduler/internal/notify"
	"github.com/PawshSuite/groom-scheduler/internal/session"
	ucAppointment "github.com/PawshSuite/groom-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log zerolog.Logger,
	sessions *session.Store,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	var payments billing.PaymentLinker = billing.Disabled{}
	if cfg.MercadoPagoToken != "" {
		if mp, err := billing.NewMercadoPago(cfg.MercadoPagoToken); err == nil {
			payments = mp
		} else {
			log.Warn().Err(err).Msg("mercadopago disabled: invalid configuration")
		}
	}

	notifiers := notify.Fanout{notify.NewSMSHandoff(log)}
	if cfg.SMTPHost != "" {
		notifiers = append(notifiers, notify.NewEmailNotifier(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUser,
			cfg.SMTPPass,
			cfg.SMTPFrom,
		))
	}

	photos := media.NewPhotoStore(
		cfg.S3Region,
		cfg.S3AccessKey,
		cfg.S3SecretKey,
		cfg.S3Bucket,
		cfg.S3BaseURL,
	)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	editAppointmentUC := ucAppointment.NewEditAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	markNoShowUC := ucAppointment.NewMarkNoShow(
		appointmentRepo,
		auditDispatcher,
	)

	checkoutUC := ucAppointment.NewCheckout(
		appointmentRepo,
		payments,
		auditDispatcher,
	)

	dayViewUC := ucAppointment.NewDayView(appointmentRepo)
	listWeekUC := ucAppointment.NewListWeek(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	// O coordenador do drag-and-drop usa o use case de reagendamento
	// como Updater e o fanout (e-mail + handoff de SMS) como Notifier.
	dragCoordinator := reschedule.NewCoordinator(
		rescheduleAppointmentUC,
		notifiers,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, sessions)
	meHandler := handlers.NewMeHandler(db)
	shopHandler := handlers.NewShopHandler(db)

	clientHandler := handlers.NewClientHandler(db)
	petHandler := handlers.NewPetHandler(db, photos)
	serviceHandler := handlers.NewServiceHandler(db)
	itemHandler := handlers.NewItemHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	waitlistHandler := handlers.NewWaitlistHandler(db, createAppointmentUC)

	appointmentHandler := handlers.NewAppointmentHandler(handlers.AppointmentHandlerDeps{
		Repo:         appointmentRepo,
		Create:       createAppointmentUC,
		Edit:         editAppointmentUC,
		Delete:       deleteAppointmentUC,
		Confirm:      confirmAppointmentUC,
		Complete:     completeAppointmentUC,
		Cancel:       cancelAppointmentUC,
		NoShow:       markNoShowUC,
		Checkout:     checkoutUC,
		DayView:      dayViewUC,
		ListWeek:     listWeekUC,
		Availability: availabilityUC,
		Drags:        dragCoordinator,
	})

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, sessions))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/me/shop", shopHandler.GetMeShop)
			secured.PATCH("/me/shop", shopHandler.UpdateMeShop)

			// ------------------------------
			// CLIENTES + PETS
			// ------------------------------
			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/:clientId", clientHandler.Get)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:clientId", clientHandler.Update)
			secured.DELETE("/me/clients/:clientId", clientHandler.Delete)

			secured.GET("/me/clients/:clientId/pets", petHandler.ListByClient)
			secured.POST("/me/clients/:clientId/pets", petHandler.Create)
			secured.PATCH("/me/pets/:id", petHandler.Update)
			secured.DELETE("/me/pets/:id", petHandler.Delete)
			secured.POST("/me/pets/:id/photo", petHandler.UploadPhoto)

			// ------------------------------
			// CATÁLOGO
			// ------------------------------
			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			secured.GET("/me/items", itemHandler.List)
			secured.POST("/me/items", itemHandler.Create)
			secured.PATCH("/me/items/:id", itemHandler.Update)
			secured.DELETE("/me/items/:id", itemHandler.Delete)

			secured.GET("/me/working-hours", workingHoursHandler.List)
			secured.PUT("/me/working-hours", workingHoursHandler.Replace)

			// ------------------------------
			// FILA DE ESPERA
			// ------------------------------
			secured.GET("/me/waitlist", waitlistHandler.List)
			secured.POST("/me/waitlist", waitlistHandler.Create)
			secured.POST("/me/waitlist/:id/book", waitlistHandler.Book)
			secured.PATCH("/me/waitlist/:id", waitlistHandler.Resolve)
			secured.DELETE("/me/waitlist/:id", waitlistHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments/day", appointmentHandler.DayView)
			secured.GET("/me/appointments/week", appointmentHandler.Week)
			secured.GET("/me/appointments/availability", appointmentHandler.Availability)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)

			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)
			secured.POST("/me/appointments/:id/checkout", appointmentHandler.Checkout)

			// ------------------------------
			// DRAG RESCHEDULE (protocolo)
			// ------------------------------
			secured.POST("/me/appointments/:id/reschedule/begin", appointmentHandler.BeginDrag)
			secured.POST("/me/appointments/:id/reschedule/hover", appointmentHandler.HoverDrag)
			secured.POST("/me/appointments/:id/reschedule/drop", appointmentHandler.DropDrag)
			secured.POST("/me/appointments/:id/reschedule/series", appointmentHandler.ChooseSeriesDrag)
			secured.POST("/me/appointments/:id/reschedule/confirm", appointmentHandler.ConfirmDrag)
			secured.POST("/me/appointments/:id/reschedule/cancel", appointmentHandler.CancelDrag)
			secured.POST("/me/appointments/:id/reschedule/notify", appointmentHandler.NotifyDrag)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
