// Package domain defines nonce records and the replay guard ports
package domain

import (
	"context"
	"time"

	perr "interestd/internal/platform/errors"
)

// MinNonceLen is the shortest nonce, in runes after normalization
const MinNonceLen = 8

// ErrNonceTooShort is returned for a nonce that normalizes below MinNonceLen
var ErrNonceTooShort = perr.WithField(perr.Validationf("nonce must be at least %d characters", MinNonceLen), "nonce")

// ErrReplayRejected is returned for a nonce already accepted inside its window
var ErrReplayRejected = perr.New(perr.ErrorCodeConflict, "replay: nonce already used")

// Store records (user, nonce) pairs with an expiry
type Store interface {
	// Claim records the pair until expires unless a record live at now exists
	// false means the pair is live and was left untouched
	Claim(ctx context.Context, userID, nonce string, now, expires time.Time) (bool, error)
	// Sweep deletes records expired at now and returns how many went
	Sweep(ctx context.Context, now time.Time) (int64, error)
}

// GuardPort is the replay check consumed by ingestion
type GuardPort interface {
	// CheckAndRecord accepts an empty nonce unconditionally
	// A non empty nonce that normalizes below MinNonceLen is ErrNonceTooShort
	CheckAndRecord(ctx context.Context, userID, nonce string) (accepted bool, err error)
}
