// Package domain defines the ingestion request, per item results, and the port
package domain

import (
	"context"
	"fmt"
	"unicode/utf8"

	"interestd/internal/core/normalize"
	perr "interestd/internal/platform/errors"
	replay "interestd/internal/services/replay/domain"
	scoring "interestd/internal/services/scoring/domain"
)

// MaxBatch bounds items per request
const MaxBatch = 100

// Item is one client observed event set for one article
type Item struct {
	ArticleID string          `json:"articleId"       validate:"required,min=1,max=256" example:"a-1029"`
	Events    *scoring.Events `json:"events"          validate:"required"`
	Nonce     string          `json:"nonce,omitempty" validate:"omitempty,min=8,max=128" example:"k3j9x0a1lq"`
	// TS is the client clock in epoch milliseconds; informational only
	TS *float64 `json:"ts,omitempty" validate:"omitempty,min=0" example:"1740830400000"`
}

// Request is either a single item or {batch: [...]}, never both
type Request struct {
	ArticleID string          `json:"articleId,omitempty" validate:"omitempty,min=1,max=256"`
	Events    *scoring.Events `json:"events,omitempty"`
	Nonce     string          `json:"nonce,omitempty"     validate:"omitempty,min=8,max=128"`
	TS        *float64        `json:"ts,omitempty"        validate:"omitempty,min=0"`
	Batch     []Item          `json:"batch,omitempty"     validate:"omitempty,min=1,max=100,dive"`
}

// Items returns the request in batch form with article ids and nonces in
// canonical form, or a validation error naming the field at fault
// Length bounds are checked again after normalization since blanks and
// control characters do not survive it
func (r Request) Items() ([]Item, error) {
	single := r.ArticleID != "" || r.Events != nil || r.Nonce != "" || r.TS != nil
	switch {
	case single && r.Batch != nil:
		return nil, perr.WithField(perr.Validationf("send either a single item or a batch, not both"), "batch")
	case r.Batch != nil:
		if len(r.Batch) == 0 {
			return nil, perr.WithField(perr.Validationf("batch must contain at least 1 item"), "batch")
		}
		out := make([]Item, len(r.Batch))
		for i, it := range r.Batch {
			c, err := canonical(it, fmt.Sprintf("batch[%d].", i))
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case r.Events == nil && r.ArticleID != "":
		return nil, perr.WithField(perr.Validationf("events is required"), "events")
	default:
		c, err := canonical(Item{ArticleID: r.ArticleID, Events: r.Events, Nonce: r.Nonce, TS: r.TS}, "")
		if err != nil {
			return nil, err
		}
		return []Item{c}, nil
	}
}

func canonical(it Item, path string) (Item, error) {
	it.ArticleID = normalize.ID(it.ArticleID)
	if it.ArticleID == "" {
		return Item{}, perr.WithField(perr.Validationf("articleId is required"), path+"articleId")
	}
	if it.Events == nil {
		return Item{}, perr.WithField(perr.Validationf("events is required"), path+"events")
	}
	if it.Nonce != "" {
		it.Nonce = normalize.ID(it.Nonce)
		if utf8.RuneCountInString(it.Nonce) < replay.MinNonceLen {
			return Item{}, perr.WithField(
				perr.Validationf("nonce must be at least %d characters", replay.MinNonceLen), path+"nonce")
		}
	}
	return it, nil
}

// Status of one item after ingestion
type Status string

const (
	// StatusApplied means at least one tag index was updated
	StatusApplied Status = "applied"
	// StatusSkipped means the score was zero or the article is untagged
	StatusSkipped Status = "skipped"
	// StatusDuplicate means the nonce was already used inside its window
	StatusDuplicate Status = "duplicate"
	// StatusFailed means a dependency failed; the event was dropped
	StatusFailed Status = "failed"
)

// ItemResult reports one item's outcome
type ItemResult struct {
	ArticleID string `json:"articleId"`
	Status    Status `json:"status"`
	Updated   int    `json:"updated"`
	// Code is the error code for duplicate and failed items, as in the error envelope
	Code perr.ErrorCode `json:"code,omitempty"`
}

// Response is the ingestion answer
type Response struct {
	OK      bool         `json:"ok"`
	Updated int          `json:"updated"`
	Items   []ItemResult `json:"items"`
}

// IngestPort applies a request for an authenticated user
type IngestPort interface {
	Ingest(ctx context.Context, userID string, items []Item) (Response, error)
}
