package domain

import "time"

// Customer represents a billing customer in the domain layer.
type Customer struct {
	ID         int64
	Name       string
	Note       string
	Archived   bool
	HourlyRate int64
	UpdatedAt  time.Time
}
