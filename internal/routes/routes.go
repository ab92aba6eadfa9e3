package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/turnos-scheduler/internal/audit"
	"github.com/BruksfildServices01/turnos-scheduler/internal/clock"
	"github.com/BruksfildServices01/turnos-scheduler/internal/config"
	"github.com/BruksfildServices01/turnos-scheduler/internal/domain/payment"
	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
	"github.com/BruksfildServices01/turnos-scheduler/internal/handlers"
	"github.com/BruksfildServices01/turnos-scheduler/internal/middleware"
	ucTurno "github.com/BruksfildServices01/turnos-scheduler/internal/usecase/turno"
	"github.com/BruksfildServices01/turnos-scheduler/internal/validators"
)

// Deps are the singletons built by main.
type Deps struct {
	DB      *gorm.DB
	Repo    domain.Repository
	Reaper  *ucTurno.Reaper
	Locker  domain.SlotLocker
	Gateway payment.Gateway
	Audit   *audit.Dispatcher
	Clock   clock.Clock
}

func RegisterRoutes(r *gin.Engine, deps Deps, cfg *config.Config) {

	if err := validators.Register(); err != nil {
		log.Fatal().Err(err).Msg("registering validators")
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createHoldUC := ucTurno.NewCreateHold(
		deps.Repo,
		deps.Reaper,
		deps.Locker,
		deps.Gateway,
		deps.Clock,
		deps.Audit,
		ucTurno.CheckoutSettings{
			FrontURL:   cfg.FrontURL,
			WebhookURL: cfg.WebhookURL(),
			Currency:   cfg.MercadoPago.Currency,
		},
	)

	confirmPaymentUC := ucTurno.NewConfirmPayment(deps.Repo, deps.Clock, deps.Audit)
	processPaymentEventUC := ucTurno.NewProcessPaymentEvent(deps.Gateway, confirmPaymentUC)

	listOccupiedUC := ucTurno.NewListOccupied(deps.Repo, deps.Reaper, deps.Clock)
	cancelUC := ucTurno.NewCancel(deps.Repo, deps.Clock, deps.Audit)
	getStatusUC := ucTurno.NewGetStatus(deps.Repo, deps.Reaper, deps.Clock)
	listTurnosUC := ucTurno.NewListTurnos(deps.Repo, deps.Reaper)

	// ======================================================
	// HANDLERS
	// ======================================================
	turnoHandler := handlers.NewTurnoHandler(
		createHoldUC,
		listOccupiedUC,
		cancelUC,
		getStatusUC,
		listTurnosUC,
	)
	webhookHandler := handlers.NewWebhookHandler(processPaymentEventUC)
	healthHandler := handlers.NewHealthHandler(deps.Repo)
	adminHandler := handlers.NewAdminHandler(cfg.Admin)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/health", healthHandler.Health)

	r.POST("/crear-preferencia", turnoHandler.CrearPreferencia)
	r.POST("/webhook", webhookHandler.Receive)
	r.GET("/turnos-ocupados", turnoHandler.TurnosOcupados)
	r.GET("/estado-turno", turnoHandler.EstadoTurno)
	r.DELETE("/cancelar-turno", turnoHandler.CancelarTurno)

	// ======================================================
	// ADMIN
	// ======================================================
	r.POST("/admin/login", adminHandler.Login)

	if !cfg.AdminEnabled() {
		log.Warn().Msg("ADMIN_PASSWORD_HASH not set, /ver-turnos is public")
		r.GET("/ver-turnos", turnoHandler.VerTurnos)
		return
	}

	secured := r.Group("/")
	secured.Use(middleware.AdminAuth(cfg.Admin.JWTSecret))
	{
		secured.GET("/ver-turnos", turnoHandler.VerTurnos)
		secured.GET("/admin/audit-logs", auditLogsHandler.List)
	}
}
