package mite

import (
	"context"
	"log/slog"
	"time"

	"mite-scraper/internal/domain"
	api "mite-scraper/mite"
)

// Tracker implements ports.TimeTracker on top of the mite API client.
type Tracker struct {
	client *api.Client
	log    *slog.Logger
}

func NewTracker(baseURL, account, apiKey, userAgent string, log *slog.Logger) *Tracker {
	return &Tracker{
		client: api.NewClient(baseURL, account, apiKey, userAgent, log),
		log:    log,
	}
}

// ListTimeEntries fetches entries whose date falls in [from, to], mapped to
// the domain. The window is day-granular on the wire.
func (t *Tracker) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error) {
	entries, err := t.client.ListTimeEntries(ctx, api.Query{
		"from": from.Format("2006-01-02"),
		"to":   to.Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.TimeEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.TimeEntry{
			ID:           e.ID,
			Minutes:      e.Minutes,
			Date:         e.DateAt.Time,
			Note:         e.Note,
			Billable:     e.Billable,
			Locked:       e.Locked,
			UserID:       e.UserID,
			UserName:     e.UserName,
			ProjectID:    optionalID(e.ProjectID),
			ProjectName:  e.ProjectName,
			CustomerID:   optionalID(e.CustomerID),
			CustomerName: e.CustomerName,
			ServiceID:    optionalID(e.ServiceID),
			ServiceName:  e.ServiceName,
			UpdatedAt:    e.UpdatedAt.Time,
		})
	}
	return out, nil
}

// ListProjects fetches all projects visible to the configured credentials.
func (t *Tracker) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := t.client.ListProjects(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, domain.Project{
			ID:         p.ID,
			Name:       p.Name,
			Note:       p.Note,
			CustomerID: optionalID(p.CustomerID),
			Archived:   p.Archived,
			Budget:     p.Budget,
			HourlyRate: p.HourlyRate,
			UpdatedAt:  p.UpdatedAt.Time,
		})
	}
	return out, nil
}

// ListCustomers fetches all customers visible to the configured credentials.
func (t *Tracker) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := t.client.ListCustomers(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		out = append(out, domain.Customer{
			ID:         c.ID,
			Name:       c.Name,
			Note:       c.Note,
			Archived:   c.Archived,
			HourlyRate: c.HourlyRate,
			UpdatedAt:  c.UpdatedAt.Time,
		})
	}
	return out, nil
}

// optionalID maps the service's zero-means-absent foreign keys to pointers.
func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
