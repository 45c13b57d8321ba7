package domain

import "time"

// Project represents a billable project in the domain layer.
type Project struct {
	ID         int64
	Name       string
	Note       string
	CustomerID *int64
	Archived   bool
	Budget     int64
	HourlyRate int64
	UpdatedAt  time.Time // Last update timestamp from the tracker
}
