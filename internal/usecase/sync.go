package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"mite-scraper/internal/ports"
)

// ErrAlreadyRunning is returned when a sync is triggered while another one
// is still in flight.
var ErrAlreadyRunning = errors.New("sync already running")

// SyncUseCase coordinates fetching from the time tracker and syncing to a
// Sink. At most one sync runs at a time.
type SyncUseCase struct {
	Log     *slog.Logger
	Tracker ports.TimeTracker
	Sink    ports.Sink

	running atomic.Bool
}

func (uc *SyncUseCase) Run(ctx context.Context, from, to time.Time) error {
	if uc.Tracker == nil || uc.Sink == nil {
		return errors.New("usecase not initialized: missing dependencies")
	}
	if !uc.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer uc.running.Store(false)

	uc.Log.Info("fetching time entries", slog.Time("from", from), slog.Time("to", to))
	entries, err := uc.Tracker.ListTimeEntries(ctx, from, to)
	if err != nil {
		return err
	}
	uc.Log.Info("fetched time entries", slog.Int("count", len(entries)))
	if err := uc.Sink.SyncEntries(ctx, entries); err != nil {
		return err
	}

	projects, err := uc.Tracker.ListProjects(ctx)
	if err != nil {
		return err
	}
	if err := uc.Sink.SyncProjects(ctx, projects); err != nil {
		return err
	}

	customers, err := uc.Tracker.ListCustomers(ctx)
	if err != nil {
		return err
	}
	if err := uc.Sink.SyncCustomers(ctx, customers); err != nil {
		return err
	}

	uc.Log.Info("sync completed",
		slog.Int("entries", len(entries)),
		slog.Int("projects", len(projects)),
		slog.Int("customers", len(customers)),
	)
	return nil
}
