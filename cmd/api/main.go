package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/turnos-scheduler/internal/audit"
	"github.com/BruksfildServices01/turnos-scheduler/internal/clock"
	"github.com/BruksfildServices01/turnos-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/turnos-scheduler/internal/db"
	"github.com/BruksfildServices01/turnos-scheduler/internal/domain/payment"
	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
	"github.com/BruksfildServices01/turnos-scheduler/internal/infra/mercadopago"
	"github.com/BruksfildServices01/turnos-scheduler/internal/infra/rabbitmq"
	infraRepo "github.com/BruksfildServices01/turnos-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/turnos-scheduler/internal/infra/slotlock"
	"github.com/BruksfildServices01/turnos-scheduler/internal/logger"
	"github.com/BruksfildServices01/turnos-scheduler/internal/middleware"
	"github.com/BruksfildServices01/turnos-scheduler/internal/notification"
	"github.com/BruksfildServices01/turnos-scheduler/internal/routes"
	ucTurno "github.com/BruksfildServices01/turnos-scheduler/internal/usecase/turno"
)

func main() {

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := dbpkg.NewDB(cfg)
	repo := infraRepo.NewTurnoGormRepository(db)
	clk := clock.NewRealClock()

	dispatcher := audit.NewDispatcher(auditSinks(cfg, db)...)
	reaper := ucTurno.NewReaper(repo, clk, cfg.HoldWindow)

	deps := routes.Deps{
		DB:      db,
		Repo:    repo,
		Reaper:  reaper,
		Locker:  newSlotLocker(ctx, cfg),
		Gateway: newGateway(cfg),
		Audit:   dispatcher,
		Clock:   clk,
	}

	if cfg.LogFormat == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowOrigins))

	routes.RegisterRoutes(r, deps, cfg)

	go reaper.Run(ctx, cfg.ReaperInterval)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("audit queue not drained")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newGateway(cfg *config.Config) payment.Gateway {
	if cfg.MercadoPago.AccessToken == "" {
		log.Warn().Msg("MP_ACCESS_TOKEN not set, bookings will fail at checkout")
		return payment.Disabled{}
	}

	gw, err := mercadopago.New(cfg.MercadoPago.AccessToken, cfg.MercadoPago.Sandbox)
	if err != nil {
		log.Fatal().Err(err).Msg("configuring Mercado Pago")
	}
	return gw
}

func newSlotLocker(ctx context.Context, cfg *config.Config) domain.SlotLocker {
	if cfg.RedisURL == "" {
		return slotlock.NewLocal()
	}

	locker, err := slotlock.NewRedisFromURL(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-process slot lock")
		return slotlock.NewLocal()
	}

	log.Info().Msg("using redis slot lock")
	return locker
}

func auditSinks(cfg *config.Config, db *gorm.DB) []audit.Sink {
	sinks := []audit.Sink{audit.New(db)}

	if cfg.Email.NotifyTo != "" {
		var sender notification.Sender = notification.LogSender{}
		if cfg.Email.ResendAPIKey != "" {
			sender = notification.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
		}
		sinks = append(sinks, notification.NewEmailSink(sender, cfg.Email.NotifyTo))
	}

	if cfg.RabbitMQURL != "" {
		sinks = append(sinks, rabbitmq.NewPublisher(cfg.RabbitMQURL))
	}

	return sinks
}
