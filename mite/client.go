// Package mite is a read-only client for the mite time tracking REST API.
//
// Requests target https://{account}.mite.de/ and authenticate with the
// X-MiteAccount and X-MiteApiKey headers. Non-success statuses are not
// errors: list operations come back empty and single-item operations come
// back nil, so a 404 is indistinguishable from an empty result by design
// (the status is logged at debug level). Errors are reserved for transport
// and decoding failures.
package mite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultDomain    = "mite.de"
	defaultUserAgent = "mite-scraper/0.1"
	requestTimeout   = 30 * time.Second
)

// Client issues authenticated GET requests against one mite account.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	baseURL   string
	account   string
	apiKey    string
	userAgent string
	http      *http.Client
	log       *slog.Logger
}

// NewClient builds a Client for the given account and API key. An empty
// baseURL derives https://{account}.mite.de; an empty userAgent falls back
// to a fixed library identifier.
func NewClient(baseURL, account, apiKey, userAgent string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.%s", account, defaultDomain)
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		account:   account,
		apiKey:    apiKey,
		userAgent: userAgent,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		log: log,
	}
}

// get issues one GET for path (already including any query string) and
// returns the status code and raw body.
func (c *Client) get(ctx context.Context, path string) (int, []byte, error) {
	if c.apiKey == "" {
		return 0, nil, errors.New("missing api key")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("X-MiteAccount", c.account)
	req.Header.Set("X-MiteApiKey", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Debug("mite: non-success status",
			slog.Int("status", resp.StatusCode),
			slog.String("path", path),
		)
	}
	return resp.StatusCode, body, nil
}

// fetchList runs the shared list dispatch: GET, unwrap, decode each element.
func fetchList[T any](ctx context.Context, c *Client, path, key string, q Query) ([]T, error) {
	status, body, err := c.get(ctx, path+q.Encode())
	if err != nil {
		return nil, err
	}
	items, err := unwrapList(status, body, key)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, raw := range items {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// fetchSingle runs the shared single-item dispatch. A nil, nil return means
// the service answered with a non-success status or no payload.
func fetchSingle[T any](ctx context.Context, c *Client, path, key string) (*T, error) {
	status, body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	raw, err := unwrapSingle(status, body, key)
	if err != nil || raw == nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetAccount fetches the account the credentials belong to.
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	return fetchSingle[Account](ctx, c, epAccount, keyAccount)
}

// GetMyself fetches the user owning the API key.
func (c *Client) GetMyself(ctx context.Context) (*User, error) {
	return fetchSingle[User](ctx, c, epMyself, keyUser)
}

// ListTimeEntries fetches time entries matching q (project_id, customer_id,
// user_id, at, from, to, billable, page, limit, ...).
func (c *Client) ListTimeEntries(ctx context.Context, q Query) ([]TimeEntry, error) {
	return fetchList[TimeEntry](ctx, c, epTimeEntries, keyTimeEntry, q)
}

// ListTimeEntriesToday fetches today's time entries. A caller-supplied "at"
// filter in q is overwritten.
func (c *Client) ListTimeEntriesToday(ctx context.Context, q Query) ([]TimeEntry, error) {
	return c.ListTimeEntries(ctx, q.merge(Query{"at": "today"}))
}

// ListTimeEntriesAt fetches the time entries of one day, overwriting any
// caller-supplied "at" filter.
func (c *Client) ListTimeEntriesAt(ctx context.Context, day time.Time, q Query) ([]TimeEntry, error) {
	return c.ListTimeEntries(ctx, q.merge(Query{"at": day.Format(dateLayout)}))
}

// ListProjectTimeEntries fetches the time entries booked on one project,
// overwriting any caller-supplied "project_id" filter.
func (c *Client) ListProjectTimeEntries(ctx context.Context, projectID int64, q Query) ([]TimeEntry, error) {
	return c.ListTimeEntries(ctx, q.merge(Query{"project_id": projectID}))
}

// ListCustomerTimeEntries fetches the time entries booked for one customer,
// overwriting any caller-supplied "customer_id" filter.
func (c *Client) ListCustomerTimeEntries(ctx context.Context, customerID int64, q Query) ([]TimeEntry, error) {
	return c.ListTimeEntries(ctx, q.merge(Query{"customer_id": customerID}))
}

// GetTimeEntry fetches one time entry by id, or nil when no entry matches.
// The API offers no per-id time entry endpoint in this surface, so the full
// unfiltered collection is fetched and scanned client-side.
func (c *Client) GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	entries, err := c.ListTimeEntries(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, nil
}

// ListCustomers fetches customers matching q.
func (c *Client) ListCustomers(ctx context.Context, q Query) ([]Customer, error) {
	return fetchList[Customer](ctx, c, epCustomers, keyCustomer, q)
}

// GetCustomer fetches one customer by id, or nil when absent.
func (c *Client) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	return fetchSingle[Customer](ctx, c, singleResource(epCustomers, id), keyCustomer)
}

// ListProjects fetches projects matching q.
func (c *Client) ListProjects(ctx context.Context, q Query) ([]Project, error) {
	return fetchList[Project](ctx, c, epProjects, keyProject, q)
}

// GetProject fetches one project by id, or nil when absent.
func (c *Client) GetProject(ctx context.Context, id int64) (*Project, error) {
	return fetchSingle[Project](ctx, c, singleResource(epProjects, id), keyProject)
}

// ListServices fetches services matching q.
func (c *Client) ListServices(ctx context.Context, q Query) ([]Service, error) {
	return fetchList[Service](ctx, c, epServices, keyService, q)
}

// GetService fetches one service by id, or nil when absent.
func (c *Client) GetService(ctx context.Context, id int64) (*Service, error) {
	return fetchSingle[Service](ctx, c, singleResource(epServices, id), keyService)
}

// ListUsers fetches account members matching q.
func (c *Client) ListUsers(ctx context.Context, q Query) ([]User, error) {
	return fetchList[User](ctx, c, epUsers, keyUser, q)
}

// GetUser fetches one user by id, or nil when absent.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	return fetchSingle[User](ctx, c, singleResource(epUsers, id), keyUser)
}
