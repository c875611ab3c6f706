package salonapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// dataEnvelope matches the {"data": ...} wrappers the salon API emits. Some
// endpoints answer with a bare array, some with {"data": [...]}, and a few
// with the envelope applied twice.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// unwrap peels envelopes until a JSON array, a plain object or null remains.
func unwrap(body []byte) (json.RawMessage, error) {
	raw := json.RawMessage(bytes.TrimSpace(body))

	for {
		if len(raw) == 0 {
			return nil, fmt.Errorf("empty response body")
		}

		switch raw[0] {
		case '[':
			return raw, nil
		case 'n':
			return nil, nil
		case '{':
			var env dataEnvelope
			if err := json.Unmarshal(raw, &env); err != nil {
				return nil, err
			}
			if env.Data == nil {
				return raw, nil
			}
			raw = json.RawMessage(bytes.TrimSpace(env.Data))
		default:
			return nil, fmt.Errorf("unexpected response shape: %.20s", string(raw))
		}
	}
}

// decodeList normalizes every observed list envelope into a typed slice.
// null and missing data decode to an empty slice.
func decodeList[T any](body []byte) ([]T, error) {
	raw, err := unwrap(body)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []T{}, nil
	}
	if raw[0] != '[' {
		return nil, fmt.Errorf("expected a list, got: %.20s", string(raw))
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// decodeObject normalizes a single-object response; null decodes to nil.
func decodeObject[T any](body []byte) (*T, error) {
	raw, err := unwrap(body)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
