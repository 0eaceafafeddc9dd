// Package ranking orders scored items with a near-tie recency rule
package ranking

import (
	"math"
	"sort"
	"time"
)

// DefaultNearTie is the relative score gap under which recency decides order
const DefaultNearTie = 0.10

// Scored pairs an item with its relevance score and creation time
type Scored[T any] struct {
	Item      T
	Score     int64
	CreatedAt time.Time
}

// Before reports whether a sorts ahead of b
// when both scores sit within nearTie of their (positive) average the newer item wins,
// otherwise higher score wins and recency breaks exact ties
func Before[T any](a, b Scored[T], nearTie float64) bool {
	avg := (float64(a.Score) + float64(b.Score)) / 2
	if avg > 0 && math.Abs(float64(a.Score)-float64(b.Score))/avg < nearTie {
		return a.CreatedAt.After(b.CreatedAt)
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// Sort orders xs in place; items that compare equal keep their input order
//
// Before is not transitive: near ties chain, so 100 (day 5), 109 (day 3) and
// 118 (day 1) each beat the next and the last beats the first. For such a
// chain the result depends on input order; the same input always gives the
// same output
func Sort[T any](xs []Scored[T], nearTie float64) {
	if nearTie < 0 {
		nearTie = 0
	}
	sort.SliceStable(xs, func(i, j int) bool { return Before(xs[i], xs[j], nearTie) })
}

// Items strips scores, returning the ordered payloads
func Items[T any](xs []Scored[T]) []T {
	out := make([]T, len(xs))
	for i, x := range xs {
		out[i] = x.Item
	}
	return out
}
