package mite

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// unwrapList normalizes a list response: on a non-200 status or an empty
// body it yields no items (and no error), otherwise it strips the envelope
// key from each element. A missing envelope key leaves the element as-is.
func unwrapList(status int, body []byte, key string) ([]json.RawMessage, error) {
	if status != http.StatusOK || emptyBody(body) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		raw, err := unwrapObject(item, key)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

// unwrapSingle is the singular counterpart of unwrapList: nil on non-200 or
// missing payload, otherwise the payload behind the envelope key.
func unwrapSingle(status int, body []byte, key string) (json.RawMessage, error) {
	if status != http.StatusOK || emptyBody(body) {
		return nil, nil
	}
	return unwrapObject(body, key)
}

func unwrapObject(raw json.RawMessage, key string) (json.RawMessage, error) {
	if key == "" {
		return raw, nil
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if inner, ok := env[key]; ok {
		return inner, nil
	}
	return raw, nil
}

func emptyBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
