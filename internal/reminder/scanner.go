package reminder

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dstanton/taskminder/internal/platform/logger"
	"github.com/dstanton/taskminder/internal/platform/mailer"
	"github.com/dstanton/taskminder/internal/store"
)

// ErrScanInProgress is returned when a scan is requested while a previous
// scan is still running. Overlapping ticks are skipped, not queued.
var ErrScanInProgress = errors.New("reminder scan already in progress")

// ScanStats summarizes a single scan pass for logging and tests.
type ScanStats struct {
	Scanned   int
	Delivered int
	Skipped   int
	Failed    int
}

// Scanner runs the reminder transition rule over all candidate tasks.
type Scanner struct {
	tasks   store.TaskStore
	mailer  mailer.Mailer
	logger  *slog.Logger
	nowFunc func() time.Time // Injectable for testing

	// mu serializes scans; TryLock implements the skip-if-running guard.
	mu sync.Mutex
}

// NewScanner creates a Scanner with the given dependencies.
func NewScanner(tasks store.TaskStore, m mailer.Mailer, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{
		tasks:   tasks,
		mailer:  m,
		logger:  log.With(slog.String("component", "reminder_scanner")),
		nowFunc: time.Now,
	}
}

// Scan executes one full pass: find tasks due today that have not been
// reminded today, dispatch a reminder for each, and mark the task only when
// the dispatcher confirms delivery. Failed or skipped sends leave the task
// unmarked so a later scan the same day can retry.
//
// A per-task failure never aborts the pass. Returns ErrScanInProgress when a
// previous scan is still running.
func (s *Scanner) Scan(ctx context.Context) (ScanStats, error) {
	if !s.mu.TryLock() {
		return ScanStats{}, ErrScanInProgress
	}
	defer s.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.nowFunc()

	tasks, err := s.tasks.FindDueForReminder(ctx, now)
	if err != nil {
		log.Error("failed to load due tasks", slog.String("error", err.Error()))
		return ScanStats{}, err
	}

	stats := ScanStats{Scanned: len(tasks)}
	for _, task := range tasks {
		// The store query already filters, but the state can move between
		// the read and this point (completion, a concurrent scan's mark).
		if !task.NeedsReminder(now) {
			stats.Skipped++
			continue
		}

		result, err := s.mailer.Send(ctx, task, task.NotificationEmail)
		switch result {
		case mailer.Delivered:
			marked, err := s.tasks.MarkReminded(ctx, task.ID, now)
			if err != nil {
				log.Error("failed to record reminder dispatch",
					slog.String("task_id", task.ID.String()),
					slog.String("error", err.Error()))
				stats.Failed++
				continue
			}
			if !marked {
				log.Debug("task already marked reminded today",
					slog.String("task_id", task.ID.String()))
			}
			stats.Delivered++
		case mailer.Skipped:
			log.Debug("reminder skipped",
				slog.String("task_id", task.ID.String()))
			stats.Skipped++
		case mailer.Failed:
			errMsg := "unknown transport error"
			if err != nil {
				errMsg = err.Error()
			}
			log.Warn("reminder dispatch failed, will retry on next scan today",
				slog.String("task_id", task.ID.String()),
				slog.String("error", errMsg))
			stats.Failed++
		}
	}

	log.Info("reminder scan completed",
		slog.Int("scanned", stats.Scanned),
		slog.Int("delivered", stats.Delivered),
		slog.Int("skipped", stats.Skipped),
		slog.Int("failed", stats.Failed))
	return stats, nil
}
