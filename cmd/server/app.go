package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dstanton/taskminder/internal/config"
	"github.com/dstanton/taskminder/internal/platform/mailer"
	"github.com/dstanton/taskminder/internal/platform/postgres"
	"github.com/dstanton/taskminder/internal/reminder"
	"github.com/dstanton/taskminder/internal/service"
	"github.com/dstanton/taskminder/internal/service/auth"
	"github.com/dstanton/taskminder/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	taskService      *service.TaskService

	// Reminder delivery
	mailer   mailer.Mailer
	scanner  *reminder.Scanner
	schedule *reminder.Scheduler
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password hashing
	verifier := auth.NewBcryptVerifier()
	app.passwordHasher = verifier
	app.passwordVerifier = verifier

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	// Initialize task service
	app.taskService = service.NewTaskService(app.taskStore, app.userStore, logger)

	// Initialize the mailer used for due-date reminders
	smtpMailer, err := mailer.NewSMTPMailer(cfg.SMTP, logger.With("component", "mailer"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}
	app.mailer = smtpMailer
	if smtpMailer.Configured() {
		logger.Info("Email reminders enabled", "provider", cfg.SMTP.Provider)
	} else {
		logger.Warn("SMTP credentials not configured, email reminders will be skipped")
	}

	// Initialize the reminder scanner and its daily schedule
	app.scanner = reminder.NewScanner(app.taskStore, app.mailer, logger.With("component", "reminder"))
	app.schedule = reminder.NewScheduler(app.scanner, cfg.Reminder, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the reminder scheduler and the HTTP server, handling lifecycle
// and cleanup. It returns an error if the server fails to start or
// encounters problems.
func (app *application) Run(ctx context.Context) error {
	if err := app.schedule.Start(); err != nil {
		return fmt.Errorf("failed to start reminder scheduler: %w", err)
	}

	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop the reminder scheduler and wait for an in-flight scan to finish
	if app.schedule != nil {
		app.schedule.Stop()
	}

	// Close database connection
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
