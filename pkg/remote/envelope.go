package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// List endpoints wrap their payload in one of a finite set of envelope
// shapes, depending on backend version:
//
//   - a bare ordered list of records
//   - a bare ordered list of {"name": ...} objects
//   - {"data": [...]}
//   - {"categories": [...]}
//   - {"success": bool, "categories": [...]}
//
// decodeRecords normalizes all of them into one ordered list of raw
// elements. Anything outside the set is a malformed response, never
// inferred by probing keys.

var errNoKnownEnvelope = errors.New("no known envelope shape")

// objectEnvelope is the union of the accepted object envelopes. Exactly
// one of Data or Categories must be present.
type objectEnvelope struct {
	Success    *bool             `json:"success"`
	Data       []json.RawMessage `json:"data"`
	Categories []json.RawMessage `json:"categories"`
}

// decodeRecords extracts the ordered element list from any accepted
// envelope shape.
func decodeRecords(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errNoKnownEnvelope
	}

	switch trimmed[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("bare list: %w", err)
		}
		return list, nil

	case '{':
		var env objectEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("object envelope: %w", err)
		}
		switch {
		case env.Data != nil:
			return env.Data, nil
		case env.Categories != nil:
			return env.Categories, nil
		default:
			return nil, errNoKnownEnvelope
		}

	default:
		return nil, errNoKnownEnvelope
	}
}

// nameElement is the accepted element form for category lists: either a
// bare string or a {"name": ...} object.
type nameElement struct {
	Name string `json:"name"`
}

// decodeNames extracts a plain name list from any accepted envelope. Each
// element must be a bare string or a {name} object.
func decodeNames(data []byte) ([]string, error) {
	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(records))
	for i, rec := range records {
		trimmed := bytes.TrimSpace(rec)
		if len(trimmed) == 0 {
			return nil, fmt.Errorf("element %d: empty", i)
		}
		if trimmed[0] == '"' {
			var s string
			if err := json.Unmarshal(trimmed, &s); err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			names = append(names, s)
			continue
		}
		var obj nameElement
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if obj.Name == "" {
			return nil, fmt.Errorf("element %d: missing name", i)
		}
		names = append(names, obj.Name)
	}
	return names, nil
}

// snippet returns the leading bytes of a body for error reporting.
func snippet(data []byte) string {
	const max = 120
	s := string(bytes.TrimSpace(data))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
