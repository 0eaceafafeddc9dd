// Package service implements the replay guard over a nonce store
package service

import (
	"context"
	"time"
	"unicode/utf8"

	"interestd/internal/core/normalize"
	"interestd/internal/platform/logger"
	tim "interestd/internal/platform/time"
	"interestd/internal/services/replay/domain"
)

// DefaultTTL is how long an accepted nonce blocks its duplicates
const DefaultTTL = 10 * time.Minute

// Guard implements domain.GuardPort
type Guard struct {
	store domain.Store
	clock tim.Clock
	ttl   time.Duration
}

// New constructs a guard; ttl <= 0 means DefaultTTL
func New(store domain.Store, clock tim.Clock, ttl time.Duration) *Guard {
	if store == nil {
		panic("replay.Guard requires a non nil Store")
	}
	if clock == nil {
		clock = tim.Real()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Guard{store: store, clock: clock, ttl: ttl}
}

// NormalizeNonce puts a client nonce in canonical id form
func NormalizeNonce(n string) string {
	return normalize.ID(n)
}

// CheckAndRecord implements domain.GuardPort
func (g *Guard) CheckAndRecord(ctx context.Context, userID, raw string) (bool, error) {
	if raw == "" {
		checksTotal.WithLabelValues("absent").Inc()
		return true, nil
	}
	nonce := NormalizeNonce(raw)
	if utf8.RuneCountInString(nonce) < domain.MinNonceLen {
		checksTotal.WithLabelValues("invalid").Inc()
		return false, domain.ErrNonceTooShort
	}
	now := g.clock.Now()
	ok, err := g.store.Claim(ctx, userID, nonce, now, now.Add(g.ttl))
	switch {
	case err != nil:
		checksTotal.WithLabelValues("error").Inc()
		return false, err
	case !ok:
		checksTotal.WithLabelValues("rejected").Inc()
		logger.C(ctx).Debug().Msg("replayed nonce rejected")
		return false, nil
	default:
		checksTotal.WithLabelValues("accepted").Inc()
		return true, nil
	}
}

// Sweep purges expired records from the store
func (g *Guard) Sweep(ctx context.Context) (int64, error) {
	n, err := g.store.Sweep(ctx, g.clock.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Named("replay").Debug().Int64("removed", n).Msg("expired nonces swept")
	}
	return n, nil
}

// TTL returns the record lifetime
func (g *Guard) TTL() time.Duration { return g.ttl }
