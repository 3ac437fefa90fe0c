package models

import (
	"sort"
	"strings"
)

// ListSeparator joins multi-valued fields in every output.
const ListSeparator = ";"

// StringSet is a set of distinct, non-empty strings.
type StringSet map[string]struct{}

// NewStringSet returns a set holding the non-empty values.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v unless it is empty.
func (s StringSet) Add(v string) {
	if v == "" {
		return
	}
	s[v] = struct{}{}
}

// AddAll inserts every member of other.
func (s StringSet) AddAll(other StringSet) {
	for v := range other {
		s[v] = struct{}{}
	}
}

// Has reports membership.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of distinct values.
func (s StringSet) Len() int {
	return len(s)
}

// Sorted returns the members in ascending byte order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Join returns the sorted members joined by ListSeparator.
func (s StringSet) Join() string {
	return strings.Join(s.Sorted(), ListSeparator)
}

// Only returns the single member when the set has exactly one, else "".
func (s StringSet) Only() string {
	if len(s) != 1 {
		return ""
	}
	for v := range s {
		return v
	}
	return ""
}
