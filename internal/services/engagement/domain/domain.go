// Package domain defines anonymous engagement rows and the sink that takes them
package domain

import (
	"context"
	"time"
)

// Event is one applied ingest item without any user identity
type Event struct {
	ArticleID  string
	Open       bool
	Read       bool
	Interested bool
	TagCount   int
	At         time.Time
}

// Sink records engagement events; failures never affect ingestion
type Sink interface {
	Record(ctx context.Context, events []Event) error
}
