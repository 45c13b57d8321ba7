package mite

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "acme", "secret-key", "", nil)
}

func TestClientSendsAuthHeaders(t *testing.T) {
	var gotAccount, gotKey, gotAgent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAccount = r.Header.Get("X-MiteAccount")
		gotKey = r.Header.Get("X-MiteApiKey")
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"account":{"id":1,"name":"acme"}}`))
	})

	account, err := c.GetAccount(context.Background())
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "acme", gotAccount)
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, defaultUserAgent, gotAgent)
	assert.Equal(t, int64(1), account.ID)
}

func TestClientMissingAPIKey(t *testing.T) {
	c := NewClient("http://localhost:0", "acme", "", "", nil)
	_, err := c.GetAccount(context.Background())
	require.Error(t, err)
}

func TestGetMyself(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/myself.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"user":{"id":12,"name":"Jo","email":"jo@acme.test"}}`))
	})
	u, err := c.GetMyself(context.Background())
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Jo", u.Name)
}

func TestListTimeEntriesUnwrapsAndParsesDates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/time_entries.json", r.URL.Path)
		_, _ = w.Write([]byte(`[{"time_entry":{"id":1,"date_at":"2024-01-01","minutes":30}}]`))
	})

	entries, err := c.ListTimeEntries(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ID)
	assert.Equal(t, int64(30), entries[0].Minutes)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), entries[0].DateAt.Time)
}

func TestListTimeEntriesPassesFilter(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.ListTimeEntries(context.Background(), Query{"project_id": 42, "billable": true})
	require.NoError(t, err)
	assert.Equal(t, "billable=true&project_id=42", gotQuery)
}

func TestListTimeEntriesTodayForcesScope(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})

	// A caller-supplied scope is overwritten.
	_, err := c.ListTimeEntriesToday(context.Background(), Query{"at": "last_week", "billable": true})
	require.NoError(t, err)
	assert.Equal(t, "at=today&billable=true", gotQuery)
}

func TestListTimeEntriesAt(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})

	day := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)
	_, err := c.ListTimeEntriesAt(context.Background(), day, nil)
	require.NoError(t, err)
	assert.Equal(t, "at=2024-03-09", gotQuery)
}

func TestScopedTimeEntryVariantsForceForeignKey(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.ListProjectTimeEntries(context.Background(), 7, Query{"project_id": 99})
	require.NoError(t, err)
	assert.Equal(t, "project_id=7", gotQuery)

	_, err = c.ListCustomerTimeEntries(context.Background(), 3, nil)
	require.NoError(t, err)
	assert.Equal(t, "customer_id=3", gotQuery)
}

func TestGetTimeEntryScansCollection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/time_entries.json", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`[
			{"time_entry":{"id":1,"minutes":10}},
			{"time_entry":{"id":2,"minutes":20}},
			{"time_entry":{"id":3,"minutes":30}}
		]`))
	})

	entry, err := c.GetTimeEntry(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(20), entry.Minutes)

	missing, err := c.GetTimeEntry(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSingleResourcePaths(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"project":{"id":7,"name":"p"}}`))
	})

	p, err := c.GetProject(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "/projects/7.json", gotPath)
}

func TestNonSuccessStatusIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	customer, err := c.GetCustomer(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, customer)

	services, err := c.ListServices(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, services)
}

func TestServerErrorListIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`[{"user":{"id":1}}]`))
	})

	users, err := c.ListUsers(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestMalformedBodyIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := c.ListCustomers(context.Background(), nil)
	require.Error(t, err)
}

func TestDefaultBaseURL(t *testing.T) {
	c := NewClient("", "acme", "key", "", nil)
	assert.Equal(t, "https://acme.mite.de", c.baseURL)
}
