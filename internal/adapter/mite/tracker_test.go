package mite

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T, handler http.HandlerFunc) *Tracker {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTracker(srv.URL, "acme", "key", "", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestListTimeEntriesMapsToDomain(t *testing.T) {
	tracker := newTestTracker(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/time_entries.json", r.URL.Path)
		assert.Equal(t, "from=2024-03-01&to=2024-03-02", r.URL.RawQuery)
		_, _ = w.Write([]byte(`[{"time_entry":{
			"id": 5,
			"minutes": 90,
			"date_at": "2024-03-01",
			"note": "pairing",
			"billable": true,
			"project_id": 7,
			"project_name": "Website",
			"service_id": 0,
			"updated_at": "2024-03-01T18:00:00+01:00"
		}}]`))
	})

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	entries, err := tracker.ListTimeEntries(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, int64(5), e.ID)
	assert.Equal(t, int64(90), e.Minutes)
	assert.Equal(t, "pairing", e.Note)
	assert.True(t, e.Billable)
	require.NotNil(t, e.ProjectID)
	assert.Equal(t, int64(7), *e.ProjectID)
	// Zero foreign keys mean "not set" on the wire.
	assert.Nil(t, e.ServiceID)
	assert.Nil(t, e.CustomerID)
	assert.Equal(t, from, e.Date)
	assert.False(t, e.UpdatedAt.IsZero())
}

func TestListProjectsMapsToDomain(t *testing.T) {
	tracker := newTestTracker(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects.json", r.URL.Path)
		_, _ = w.Write([]byte(`[{"project":{"id":7,"name":"Website","customer_id":3,"archived":false}}]`))
	})

	projects, err := tracker.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Website", projects[0].Name)
	require.NotNil(t, projects[0].CustomerID)
	assert.Equal(t, int64(3), *projects[0].CustomerID)
}

func TestListCustomersMapsToDomain(t *testing.T) {
	tracker := newTestTracker(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers.json", r.URL.Path)
		_, _ = w.Write([]byte(`[{"customer":{"id":3,"name":"ACME Corp","hourly_rate":9000}}]`))
	})

	customers, err := tracker.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "ACME Corp", customers[0].Name)
	assert.Equal(t, int64(9000), customers[0].HourlyRate)
}
