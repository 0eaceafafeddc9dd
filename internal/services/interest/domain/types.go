// Package domain defines encrypted interest accumulator entries and their ports
package domain

import (
	"time"

	"interestd/internal/core/phe"
)

// Entry is the encrypted running sum for one (user, tag index) pair
// Version increases by one on every successful write
type Entry struct {
	UserID     string
	TagIndex   int
	Ciphertext phe.Ciphertext
	Version    int64
	UpdatedAt  time.Time
}

// Result reports how many tag indices an event updated
type Result struct {
	Updated int `json:"updated"`
	// Failed lists indices whose update was abandoned
	Failed []int `json:"failed,omitempty"`
}
