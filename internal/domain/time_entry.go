package domain

import "time"

// TimeEntry represents a tracked chunk of work in the domain.
// Foreign keys are pointers because an entry may be booked without a
// project, customer, or service.
type TimeEntry struct {
	ID           int64
	Minutes      int64
	Date         time.Time
	Note         string
	Billable     bool
	Locked       bool
	UserID       int64
	UserName     string
	ProjectID    *int64
	ProjectName  string
	CustomerID   *int64
	CustomerName string
	ServiceID    *int64
	ServiceName  string
	UpdatedAt    time.Time
}
