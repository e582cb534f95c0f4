package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/terraincognita07/hospitalconnect/internal/api"
	"github.com/terraincognita07/hospitalconnect/internal/clock"
	"github.com/terraincognita07/hospitalconnect/internal/config"
	"github.com/terraincognita07/hospitalconnect/internal/db"
	"github.com/terraincognita07/hospitalconnect/internal/jobs"
	"github.com/terraincognita07/hospitalconnect/internal/observability"
	"github.com/terraincognita07/hospitalconnect/internal/security"
	"github.com/terraincognita07/hospitalconnect/internal/services"
	"github.com/terraincognita07/hospitalconnect/internal/templates"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		observability.Logger().Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := observability.Configure(os.Stdout, cfg.LogLevel)
	time.Local = cfg.Location
	if cfg.UsesDefaultSecret() {
		log.Warn("SECRET_KEY is not set, using the development placeholder")
	}

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	sealer, err := security.NewSealer([]byte(cfg.SecretKey))
	if err != nil {
		return err
	}

	clk := clock.Real()
	random := services.NewRandomSource(cfg.RandomSeed)
	repos := db.NewRepositories(database)
	now := clk.Now()

	intakes := services.NewIntakeService(clk)
	bookings := services.NewBookingService(repos.Bookings, clk, cfg.Location, cfg.SubmissionDelay)
	registrations := services.NewRegistrationService(repos.RegistrationDrafts, sealer, clk,
		services.WithDraftDebounce(cfg.DraftDebounce),
		services.WithRegistrationLatency(cfg.RegistrationLatency),
		services.WithDraftErrorHandler(func(clientID string, err error) {
			log.Error("registration draft autosave failed", "client_id", clientID, "error", err)
		}),
	)
	defer registrations.Close()
	handoffs := services.NewHandoffService(repos.Handoffs, []byte(cfg.SecretKey), cfg.HandoffTokenTTL, clk)
	statusBoard := services.NewStatusBoard(random, now)
	locations := services.NewLocationTracker(random, now)

	handler, err := api.NewHandler(api.Dependencies{
		Intakes:            intakes,
		Bookings:           bookings,
		Calendar:           services.NewCalendarService(clk, random, cfg.Location),
		Registrations:      registrations,
		Handoffs:           handoffs,
		Prescriptions:      services.NewPrescriptionService(clk, cfg.RegistrationLatency),
		Status:             statusBoard,
		Locations:          locations,
		Sealer:             sealer,
		Clock:              clk,
		Templates:          templates.Files,
		CookieSecure:       cfg.CookieSecure,
		IntakeCreateLimit:  cfg.IntakeCreateLimit,
		IntakeCreateWindow: cfg.IntakeCreateWindow,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler, cfg.CookieSecure)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	pollers := []*services.Poller{
		services.NewPoller("status", clk, services.StatusInterval, statusBoard.Tick),
		services.NewPoller("dashboard-clock", clk, services.DashboardClockInterval, statusBoard.TickClock),
		services.NewPoller("doctor-location", clk, services.LocationInterval, locations.Tick),
	}
	for _, poller := range pollers {
		if err := poller.Start(lifecycleCtx); err != nil {
			return fmt.Errorf("start poller %s: %w", poller.Name(), err)
		}
		defer poller.Stop()
	}

	purger := jobs.NewPurger(intakes, bookings, registrations, handoffs, jobs.PurgePolicy{
		IntakeIdle:       cfg.IntakeIdleTTL,
		BookingIdle:      cfg.BookingIdleTTL,
		BookingRetention: cfg.BookingRetention,
		DraftRetention:   cfg.DraftRetention,
		HandoffRetention: cfg.DraftRetention,
	}, log)
	scheduler, err := jobs.Schedule(cfg.PurgeSchedule, purger)
	if err != nil {
		return err
	}
	if _, err := scheduler.AddFunc(cfg.PurgeSchedule, handler.PruneLimiters); err != nil {
		return fmt.Errorf("schedule limiter pruning: %w", err)
	}
	scheduler.Start()
	defer func() {
		<-scheduler.Stop().Done()
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	log.Info("HospitalConnect listening",
		"addr", "http://0.0.0.0:"+cfg.Port,
		"db", cfg.DBPath,
		"tz", cfg.Location.String(),
	)
	return app.Listen(":" + cfg.Port)
}

func newApp(handler *api.Handler, cookieSecure bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "HospitalConnect",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(compress.New())
	app.Use(csrf.New(csrfMiddlewareConfig(cookieSecure)))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		CookieName:     "hc_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
	}
}
