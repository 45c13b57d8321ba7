package mite

import (
	"encoding/json"
	"time"
)

// Layouts accepted for created_at/updated_at values. The service sends
// RFC3339 with an offset; the space-separated form shows up in older
// exports.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
}

const dateLayout = "2006-01-02"

// Timestamp is an audit timestamp (created_at, updated_at). Absent, null,
// or empty values stay at the zero value, and unparsable strings do too:
// the service is trusted, so nothing is validated and decoding never fails
// on a bad timestamp.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// null or a non-string value; leave untouched
		return nil
	}
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

// Date is a day-granularity value (date_at), parsed from YYYY-MM-DD with
// the same lenient rules as Timestamp.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	if s == "" {
		return nil
	}
	if parsed, err := time.Parse(dateLayout, s); err == nil {
		d.Time = parsed
	}
	return nil
}

// Account is the account the credentials belong to.
type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Currency  string    `json:"currency"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// User is an account member. GetMyself returns the user owning the API key.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Note      string    `json:"note"`
	Role      string    `json:"role"`
	Language  string    `json:"language"`
	Archived  bool      `json:"archived"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// TimeEntry is one tracked chunk of work. The *_name fields are
// denormalized display names; only the ids are authoritative.
type TimeEntry struct {
	ID           int64     `json:"id"`
	Minutes      int64     `json:"minutes"`
	DateAt       Date      `json:"date_at"`
	Note         string    `json:"note"`
	Billable     bool      `json:"billable"`
	Locked       bool      `json:"locked"`
	Revenue      *float64  `json:"revenue"`
	HourlyRate   int64     `json:"hourly_rate"`
	UserID       int64     `json:"user_id"`
	UserName     string    `json:"user_name"`
	ProjectID    int64     `json:"project_id"`
	ProjectName  string    `json:"project_name"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	ServiceID    int64     `json:"service_id"`
	ServiceName  string    `json:"service_name"`
	CreatedAt    Timestamp `json:"created_at"`
	UpdatedAt    Timestamp `json:"updated_at"`
}

// Customer groups projects for billing.
type Customer struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Note       string    `json:"note"`
	Archived   bool      `json:"archived"`
	HourlyRate int64     `json:"hourly_rate"`
	CreatedAt  Timestamp `json:"created_at"`
	UpdatedAt  Timestamp `json:"updated_at"`
}

// Project is a unit of work time entries are booked against.
type Project struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Note         string    `json:"note"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Archived     bool      `json:"archived"`
	Budget       int64     `json:"budget"`
	BudgetType   string    `json:"budget_type"`
	HourlyRate   int64     `json:"hourly_rate"`
	CreatedAt    Timestamp `json:"created_at"`
	UpdatedAt    Timestamp `json:"updated_at"`
}

// Service is a kind of activity (development, support, ...).
type Service struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Note       string    `json:"note"`
	Billable   bool      `json:"billable"`
	HourlyRate int64     `json:"hourly_rate"`
	Archived   bool      `json:"archived"`
	CreatedAt  Timestamp `json:"created_at"`
	UpdatedAt  Timestamp `json:"updated_at"`
}
