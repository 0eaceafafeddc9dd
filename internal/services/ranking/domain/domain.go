// Package domain defines feed candidates and the relevance ranker ports
package domain

import (
	"context"
	"time"
)

// Candidate is one article offered for ranking
type Candidate struct {
	ID        string    `json:"id"        validate:"required,min=1,max=256" example:"a-1029"`
	CreatedAt time.Time `json:"createdAt" validate:"required"               example:"2025-03-01T12:00:00Z"`
}

// InterestReader yields a user's decrypted interest per tag index
type InterestReader interface {
	Interests(ctx context.Context, userID string) (map[int]int64, error)
}

// RankerPort reorders candidates for one user
// ranked=false means the input order came back untouched
type RankerPort interface {
	Rank(ctx context.Context, userID string, candidates []Candidate) (out []Candidate, ranked bool)
}
