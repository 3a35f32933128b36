package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// StringSet is an ordered set of ids stored as a JSON array. Elements are
// kept sorted and unique so that serialization is deterministic regardless
// of insertion order.
type StringSet []string

func NewStringSet(ids ...string) StringSet {
	var s StringSet
	for _, id := range ids {
		s = s.Add(id)
	}
	return s
}

// Add returns the set with id inserted at its sorted position. No-op when
// the id is already present.
func (s StringSet) Add(id string) StringSet {
	i := sort.SearchStrings(s, id)
	if i < len(s) && s[i] == id {
		return s
	}
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = id
	return s
}

func (s StringSet) Contains(id string) bool {
	i := sort.SearchStrings(s, id)
	return i < len(s) && s[i] == id
}

func (s StringSet) Len() int {
	return len(s)
}

// Value implements driver.Valuer; empty sets are stored as "[]" rather than
// NULL so round trips are lossless.
func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		s = StringSet{}
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *StringSet) Scan(value interface{}) error {
	if value == nil {
		*s = StringSet{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringSet", value)
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid StringSet payload: %w", err)
	}

	*s = NewStringSet(raw...)
	return nil
}
