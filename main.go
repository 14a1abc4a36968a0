package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"hotel-admin/config"
	"hotel-admin/controllers"
	"hotel-admin/logger"
	"hotel-admin/routes"
	"hotel-admin/services"
)

func main() {
	logger.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.SetLogLevel(cfg.LogLevel)
	if cfg.LogLevel != "debug" && cfg.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Prices go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.DB.AutoMigrate {
		if err := config.Migrate(cfg, "up"); err != nil {
			log.Fatal().Err(err).Msg("database migration failed")
		}
	}

	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}

	if cfg.DB.Seed {
		if err := config.SeedDatabase(db); err != nil {
			log.Fatal().Err(err).Msg("database seed failed")
		}
	}

	loc := cfg.Location()
	payments := services.NewPaymentStatusTable(config.LegalPaymentStatuses(cfg, db))
	log.Info().Strs("payment_statuses", payments.Legal()).Str("timezone", loc.String()).Msg("booking rules loaded")

	// Initialize services
	roomTypeService := services.NewRoomTypeService(db)
	roomService := services.NewRoomService(db, roomTypeService)
	bookingService := services.NewBookingService(db, payments)
	logService := services.NewBookingLogService(db)
	statusService := services.NewBookingStatusService(db, logService, payments, loc)
	availabilityService := services.NewAvailabilityService(db, roomService)
	dashboardService := services.NewDashboardService(db, payments)

	// Initialize controllers
	router := routes.SetupRouter(cfg.CORSOrigins, routes.Controllers{
		Bookings:  controllers.NewBookingController(bookingService, statusService, availabilityService),
		Logs:      controllers.NewBookingLogController(logService),
		Rooms:     controllers.NewRoomController(roomService, roomTypeService),
		RoomTypes: controllers.NewRoomTypeController(roomTypeService),
		Dashboard: controllers.NewDashboardController(dashboardService),
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Warn().Msg("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("Server stopped gracefully")
}
