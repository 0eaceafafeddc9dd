// Package domain defines the tag index lookup the scoring core consumes
package domain

import "context"

// Resolver maps an article to the taxonomy slot indices it is labeled with
// results are ascending and distinct; empty means unlabeled
type Resolver interface {
	TagIndices(ctx context.Context, articleID string) ([]int, error)
	// TagIndicesMany resolves several articles in one round trip
	// articles without labels are absent from the map
	TagIndicesMany(ctx context.Context, articleIDs []string) (map[string][]int, error)
}
