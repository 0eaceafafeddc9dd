package domain

import (
	"context"

	"interestd/internal/core/phe"
	scoring "interestd/internal/services/scoring/domain"
)

// Store is keyed get and conditional write over accumulator entries
type Store interface {
	// Get returns the entry; ok=false when absent
	Get(ctx context.Context, userID string, tagIndex int) (e Entry, ok bool, err error)
	// Insert creates the entry at version 1; false when it already exists
	Insert(ctx context.Context, userID string, tagIndex int, c phe.Ciphertext) (bool, error)
	// CompareAndSwap replaces the ciphertext only while version still matches
	CompareAndSwap(ctx context.Context, userID string, tagIndex int, c phe.Ciphertext, version int64) (bool, error)
	// List returns every entry for a user
	List(ctx context.Context, userID string) ([]Entry, error)
}

// AccumulatorPort is the write and read surface of the accumulator
type AccumulatorPort interface {
	ApplyEvent(ctx context.Context, userID, articleID string, events scoring.Events, weights scoring.Weights) (Result, error)
	// Interests decrypts a user's entries into tag index -> value; needs the private key
	Interests(ctx context.Context, userID string) (map[int]int64, error)
}
