package mseed3

import "encoding/json"

// ExtraHeaders wraps the record's auxiliary-header blob. Parsing is
// deferred: Raw holds the bytes as read from (or about to be written
// to) the record; Parsed forces a JSON decode on first access and
// caches the result, per §9's "extra-headers lazy parsing" design
// note.
type ExtraHeaders struct {
	Raw    []byte
	parsed map[string]any
}

// NewExtraHeaders wraps an already-serialized JSON blob (or nil/empty
// for "no extra headers").
func NewExtraHeaders(raw []byte) *ExtraHeaders {
	return &ExtraHeaders{Raw: raw}
}

// Parsed forces a JSON decode of Raw on first call and returns the
// cached result on subsequent calls. An empty or nil Raw decodes to an
// empty, non-nil map.
func (e *ExtraHeaders) Parsed() (map[string]any, error) {
	if e.parsed != nil {
		return e.parsed, nil
	}
	if len(e.Raw) == 0 {
		e.parsed = map[string]any{}
		return e.parsed, nil
	}

	var m map[string]any
	if err := json.Unmarshal(e.Raw, &m); err != nil {
		return nil, err
	}

	e.parsed = m

	return m, nil
}

// SetField sets a top-level field and re-serializes Raw, keeping the
// updated map as the cached parse so the next Parsed() call reflects
// the change.
// JSON-pointer-style nested get/set is the external CLI's
// responsibility (§6); this is the library-level primitive it would
// build on.
func (e *ExtraHeaders) SetField(key string, value any) error {
	m, err := e.Parsed()
	if err != nil {
		return err
	}

	m[key] = value

	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}

	e.Raw = raw
	e.parsed = m

	return nil
}
