package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/datekey"
)

// DateSet is the set of days a habit was completed, keyed by YYYY-MM-DD.
// Methods never modify the receiver; changes return a new set.
type DateSet map[string]struct{}

// NewDateSet builds a set from keys, skipping malformed ones.
func NewDateSet(keys ...string) DateSet {
	s := make(DateSet, len(keys))
	for _, k := range keys {
		if datekey.Valid(k) {
			s[k] = struct{}{}
		}
	}
	return s
}

// Has reports whether key is in the set.
func (s DateSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of completed days.
func (s DateSet) Len() int {
	return len(s)
}

// Clone returns an independent copy.
func (s DateSet) Clone() DateSet {
	out := make(DateSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Toggle returns a copy with key removed if present, added otherwise.
func (s DateSet) Toggle(key string) DateSet {
	out := s.Clone()
	if out.Has(key) {
		delete(out, key)
	} else {
		out[key] = struct{}{}
	}
	return out
}

// Keys returns the keys in ascending date order.
func (s DateSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON encodes the set as {"YYYY-MM-DD": true, ...}, the shape the
// browser build stored.
func (s DateSet) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool, len(s))
	for k := range s {
		m[k] = true
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts either the object form or a plain array of keys.
// Keys mapped to false are not completions and are skipped, as are keys
// that are not well-formed dates.
func (s *DateSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	out := DateSet{}

	switch {
	case bytes.Equal(data, []byte("null")):
	case len(data) > 0 && data[0] == '[':
		var keys []string
		if err := json.Unmarshal(data, &keys); err != nil {
			return fmt.Errorf("completed dates: %w", err)
		}
		out = NewDateSet(keys...)
	default:
		var m map[string]bool
		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("completed dates: %w", err)
		}
		for k, done := range m {
			if done && datekey.Valid(k) {
				out[k] = struct{}{}
			}
		}
	}

	*s = out
	return nil
}
