package ports

import (
	"context"
	"time"

	"mite-scraper/internal/domain"
)

// TimeTracker defines methods to fetch records from the remote time
// tracking service.
type TimeTracker interface {
	ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// Sink receives records and persists them to a target system.
// The primary target is MySQL, but the interface is intentionally generic
// to support other sinks.
type Sink interface {
	SyncEntries(ctx context.Context, entries []domain.TimeEntry) error
	SyncProjects(ctx context.Context, projects []domain.Project) error
	SyncCustomers(ctx context.Context, customers []domain.Customer) error
}
