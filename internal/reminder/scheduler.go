package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dstanton/taskminder/internal/config"
)

// Scheduler drives the Scanner on a fixed daily schedule.
type Scheduler struct {
	scanner *Scanner
	cron    *cron.Cron
	cfg     config.ReminderConfig
	logger  *slog.Logger
}

// NewScheduler creates a Scheduler that will run the given scanner daily at
// the configured time of day.
func NewScheduler(scanner *Scanner, cfg config.ReminderConfig, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		scanner: scanner,
		// The scan compares due dates by UTC calendar day, so the daily
		// trigger runs on the UTC clock as well.
		cron:    cron.New(cron.WithLocation(time.UTC)),
		cfg:     cfg,
		logger:  log.With(slog.String("component", "reminder_scheduler")),
	}
}

// Start registers the daily cron entry and begins the schedule. When
// RunOnStart is set, one scan is kicked off immediately in the background.
func (s *Scheduler) Start() error {
	spec, err := buildDailySpec(s.cfg.DailyAt)
	if err != nil {
		return fmt.Errorf("invalid reminder schedule: %w", err)
	}

	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return fmt.Errorf("failed to register reminder schedule: %w", err)
	}

	s.cron.Start()
	s.logger.Info("reminder scheduler started",
		slog.String("daily_at", s.cfg.DailyAt),
		slog.Bool("run_on_start", s.cfg.RunOnStart))

	if s.cfg.RunOnStart {
		go s.tick()
	}

	return nil
}

// Stop halts the schedule and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()

	// Block until an in-flight scan releases the lock.
	s.scanner.mu.Lock()
	s.scanner.mu.Unlock() //nolint:staticcheck // empty critical section is the drain
	s.logger.Info("reminder scheduler stopped")
}

// tick runs one scan, skipping if a previous tick is still in flight.
func (s *Scheduler) tick() {
	s.logger.Debug("reminder tick")
	_, err := s.scanner.Scan(context.Background())
	if errors.Is(err, ErrScanInProgress) {
		s.logger.Warn("previous reminder scan still running, skipping tick")
		return
	}
	if err != nil {
		s.logger.Error("reminder scan failed", slog.String("error", err.Error()))
	}
}

// buildDailySpec converts an "HH:MM" time of day to a cron spec.
func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	// cron format: minute hour dom month dow
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
