package domain

import "context"

// ReaderPort serves weights to the ingest path; reads may be slightly stale
type ReaderPort interface {
	Weights(ctx context.Context) (Weights, error)
}

// AdminPort reads and replaces the stored weights
type AdminPort interface {
	Get(ctx context.Context) (Snapshot, error)
	// Set validates w before persisting; invalid input leaves storage untouched
	Set(ctx context.Context, w Weights, updatedBy string) (Snapshot, error)
}
