package mite

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Query holds filter parameters for list endpoints. Values may be scalars,
// slices, or nested maps; nil values are skipped. The service expects its
// own query syntax (comma-joined lists, bracketed sub-keys, no escaping),
// so encoding is done by hand rather than via url.Values.
type Query map[string]any

// Encode renders the query string for q. Slices are comma-joined under the
// original key (key=v1,v2), nested maps expand to one key[subkey]=value pair
// per entry, and everything else stringifies as key=value. The result is
// empty when no parameters remain, otherwise "?" followed by the &-joined
// pairs. Keys are emitted in sorted order so output is deterministic.
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		v := q[k]
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			elems := make([]string, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				elems[i] = fmt.Sprintf("%v", rv.Index(i).Interface())
			}
			parts = append(parts, k+"="+strings.Join(elems, ","))
		case reflect.Map:
			sub := make([]string, 0, rv.Len())
			for _, mk := range rv.MapKeys() {
				sub = append(sub, fmt.Sprintf("%s[%v]=%v", k, mk.Interface(), rv.MapIndex(mk).Interface()))
			}
			sort.Strings(sub)
			parts = append(parts, sub...)
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

// merge returns a copy of q with every entry of force applied on top,
// overwriting caller-supplied values for the same key.
func (q Query) merge(force Query) Query {
	merged := make(Query, len(q)+len(force))
	for k, v := range q {
		merged[k] = v
	}
	for k, v := range force {
		merged[k] = v
	}
	return merged
}
