package types

import (
	"encoding/json"
	"time"
)

// Well-known preference keys.
const (
	PrefTheme        = "theme"
	PrefEnabledTools = "enabled-tools"
)

// Preference is a named JSON blob. The key is the identifier; writes to the
// same key replace the previous value (last write wins) and bump Version.
type Preference struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Decode unmarshals the preference value into v.
func (p *Preference) Decode(v any) error {
	if len(p.Value) == 0 {
		return ErrInvalidData
	}
	return json.Unmarshal(p.Value, v)
}

// NewPreference encodes v as the value of a preference named key.
func NewPreference(key string, v any) (*Preference, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &Preference{Key: key, Value: raw}, nil
}
