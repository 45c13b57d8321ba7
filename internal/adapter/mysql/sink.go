package mysql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"mite-scraper/internal/domain"
)

// Client implements ports.Sink by writing to MySQL tables.
type Client struct {
	db  *sql.DB
	log *slog.Logger
}

// NewClient opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
func NewClient(ctx context.Context, dsn string, log *slog.Logger) (*Client, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	// Conservative pool defaults; can be adjusted via env later.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	return &Client{db: db, log: log}, nil
}

// SyncEntries upserts time entries into MySQL.
func (c *Client) SyncEntries(ctx context.Context, entries []domain.TimeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	const q = `
INSERT INTO mite_time_entries
  (id, minutes, date_at, note, billable, locked, user_id, user_name,
   project_id, project_name, customer_id, customer_name, service_id, service_name, updated_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  minutes=VALUES(minutes),
  date_at=VALUES(date_at),
  note=VALUES(note),
  billable=VALUES(billable),
  locked=VALUES(locked),
  user_id=VALUES(user_id),
  user_name=VALUES(user_name),
  project_id=VALUES(project_id),
  project_name=VALUES(project_name),
  customer_id=VALUES(customer_id),
  customer_name=VALUES(customer_name),
  service_id=VALUES(service_id),
  service_name=VALUES(service_name),
  updated_at=VALUES(updated_at);
`
	err := c.upsert(ctx, q, len(entries), func(stmt *sql.Stmt, i int) error {
		e := entries[i]
		_, err := stmt.ExecContext(ctx,
			e.ID,
			e.Minutes,
			e.Date.UTC(),
			e.Note,
			e.Billable,
			e.Locked,
			e.UserID,
			e.UserName,
			nullableID(e.ProjectID),
			e.ProjectName,
			nullableID(e.CustomerID),
			e.CustomerName,
			nullableID(e.ServiceID),
			e.ServiceName,
			e.UpdatedAt.UTC(),
		)
		return err
	})
	if err != nil {
		return err
	}
	c.log.Info("mysql sink upserted entries", slog.Int("count", len(entries)))
	return nil
}

// SyncProjects upserts projects into MySQL.
func (c *Client) SyncProjects(ctx context.Context, projects []domain.Project) error {
	if len(projects) == 0 {
		return nil
	}
	const q = `
INSERT INTO mite_projects
  (id, name, note, customer_id, archived, budget, hourly_rate, updated_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name=VALUES(name),
  note=VALUES(note),
  customer_id=VALUES(customer_id),
  archived=VALUES(archived),
  budget=VALUES(budget),
  hourly_rate=VALUES(hourly_rate),
  updated_at=VALUES(updated_at);
`
	err := c.upsert(ctx, q, len(projects), func(stmt *sql.Stmt, i int) error {
		p := projects[i]
		_, err := stmt.ExecContext(ctx,
			p.ID,
			p.Name,
			p.Note,
			nullableID(p.CustomerID),
			p.Archived,
			p.Budget,
			p.HourlyRate,
			p.UpdatedAt.UTC(),
		)
		return err
	})
	if err != nil {
		return err
	}
	c.log.Info("mysql sink upserted projects", slog.Int("count", len(projects)))
	return nil
}

// SyncCustomers upserts customers into MySQL.
func (c *Client) SyncCustomers(ctx context.Context, customers []domain.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	const q = `
INSERT INTO mite_customers
  (id, name, note, archived, hourly_rate, updated_at)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name=VALUES(name),
  note=VALUES(note),
  archived=VALUES(archived),
  hourly_rate=VALUES(hourly_rate),
  updated_at=VALUES(updated_at);
`
	err := c.upsert(ctx, q, len(customers), func(stmt *sql.Stmt, i int) error {
		cu := customers[i]
		_, err := stmt.ExecContext(ctx,
			cu.ID,
			cu.Name,
			cu.Note,
			cu.Archived,
			cu.HourlyRate,
			cu.UpdatedAt.UTC(),
		)
		return err
	})
	if err != nil {
		return err
	}
	c.log.Info("mysql sink upserted customers", slog.Int("count", len(customers)))
	return nil
}

// upsert runs one prepared statement for n rows inside a transaction.
func (c *Client) upsert(ctx context.Context, query string, n int, exec func(*sql.Stmt, int) error) error {
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func nullableID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

// Close closes the underlying DB. Not wired via interface to keep ports minimal.
func (c *Client) Close() error { return c.db.Close() }
