package mite

import (
	"fmt"
	"strings"
)

// Endpoint paths of the mite REST API, relative to the account base URL.
// Every endpoint is suffixed .json.
const (
	epAccount     = "account.json"
	epMyself      = "myself.json"
	epTimeEntries = "time_entries.json"
	epCustomers   = "customers.json"
	epProjects    = "projects.json"
	epServices    = "services.json"
	epUsers       = "users.json"
)

// Envelope keys the service wraps payloads in, e.g. {"project": {...}}.
const (
	keyAccount   = "account"
	keyUser      = "user"
	keyTimeEntry = "time_entry"
	keyCustomer  = "customer"
	keyProject   = "project"
	keyService   = "service"
)

// singleResource returns the path of one item in a collection,
// e.g. ("projects.json", 7) -> "projects/7.json".
func singleResource(collection string, id int64) string {
	return fmt.Sprintf("%s/%d.json", strings.TrimSuffix(collection, ".json"), id)
}
