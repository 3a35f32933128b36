// Package progress holds the pure parts of the learning-progress engine:
// percentage aggregation, streak arithmetic and prerequisite gating. Nothing
// here touches storage; callers feed in sets and get values back.
package progress

import "math"

// Set is a set of resource ids.
type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Add(id string) {
	s[id] = struct{}{}
}

func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Union merges other into a new set without mutating either operand.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// PercentComplete returns round(100 * |completed ∩ total| / |total|), using
// round half-up. An empty total yields 0: a path with no resources is
// reported as untouched, not as an error.
func PercentComplete(total, completed Set) int {
	if len(total) == 0 {
		return 0
	}

	done := 0
	for id := range total {
		if completed.Contains(id) {
			done++
		}
	}

	return int(math.Round(100 * float64(done) / float64(len(total))))
}

// CompletedCount returns |completed ∩ total|.
func CompletedCount(total, completed Set) int {
	n := 0
	for id := range total {
		if completed.Contains(id) {
			n++
		}
	}
	return n
}
