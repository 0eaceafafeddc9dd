// Package service applies weighted events to encrypted interest counters
package service

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"interestd/internal/core/phe"
	"interestd/internal/modkit/repokit"
	perr "interestd/internal/platform/errors"
	"interestd/internal/platform/logger"
	"interestd/internal/services/interest/domain"
	scoring "interestd/internal/services/scoring/domain"
	taxonomy "interestd/internal/services/taxonomy/domain"
)

// errLostRace marks a write that lost its version check; the cycle is repeated
var errLostRace = errors.New("interest: entry changed concurrently")

// Config tunes the read-add-write retry loop
type Config struct {
	// Attempts bounds read-add-write cycles per tag index, default 5
	Attempts int
	// BaseDelay and MaxDelay shape the backoff between cycles
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// Accumulator implements domain.AccumulatorPort
type Accumulator struct {
	keys  *phe.Manager
	tags  taxonomy.Resolver
	store domain.Store
	cfg   Config
}

// New constructs the accumulator; every collaborator is required
func New(db repokit.TxRunner, binder repokit.Binder[domain.Store], keys *phe.Manager, tags taxonomy.Resolver, cfg Config) *Accumulator {
	if db == nil {
		panic("interest.Accumulator requires a non nil TxRunner")
	}
	if binder == nil {
		panic("interest.Accumulator requires a non nil Store binder")
	}
	return NewWithStore(repokit.MustBind(binder, db), keys, tags, cfg)
}

// NewWithStore constructs the accumulator over an already bound store
func NewWithStore(store domain.Store, keys *phe.Manager, tags taxonomy.Resolver, cfg Config) *Accumulator {
	if store == nil || keys == nil || tags == nil {
		panic("interest.Accumulator requires a store, key manager and tag resolver")
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 5
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 10 * time.Millisecond
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = 20 * cfg.BaseDelay
	}
	return &Accumulator{keys: keys, tags: tags, store: store, cfg: cfg}
}

// ApplyEvent adds the event score into every tag index of the article
// each index commits on its own; a failed index never rolls back the others
func (a *Accumulator) ApplyEvent(ctx context.Context, userID, articleID string, events scoring.Events, weights scoring.Weights) (domain.Result, error) {
	if userID == "" {
		return domain.Result{}, perr.WithField(perr.Validationf("interest: user id required"), "userId")
	}
	k := weights.Score(events)
	if k == 0 {
		return domain.Result{}, nil
	}

	idxs, err := a.tags.TagIndices(ctx, articleID)
	if err != nil {
		return domain.Result{}, err
	}
	if len(idxs) == 0 {
		return domain.Result{}, nil
	}

	ek, err := a.keys.Encrypt(k)
	if err != nil {
		return domain.Result{}, err
	}

	log := logger.C(ctx)
	var (
		res      domain.Result
		firstErr error
	)
	for _, idx := range idxs {
		if err := a.addOne(ctx, userID, idx, ek); err != nil {
			updatesTotal.WithLabelValues(outcome(err)).Inc()
			log.Warn().Err(err).Str("article_id", articleID).Int("tag_index", idx).Msg("interest update failed")
			res.Failed = append(res.Failed, idx)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		updatesTotal.WithLabelValues("ok").Inc()
		res.Updated++
	}
	if res.Updated == 0 && firstErr != nil {
		return res, firstErr
	}
	return res, nil
}

// addOne runs the read-add-write cycle for one index until it commits or attempts run out
func (a *Accumulator) addOne(ctx context.Context, userID string, idx int, ek phe.Ciphertext) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = a.cfg.BaseDelay
	eb.MaxInterval = a.cfg.MaxDelay
	eb.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(a.cfg.Attempts-1)), ctx)

	op := func() error {
		cur, ok, err := a.store.Get(ctx, userID, idx)
		if err != nil {
			return retryOrStop(err)
		}
		if !ok {
			// absent reads as E(0); E(0)+ek keeps a fresh randomizer on the first row
			zero, err := a.keys.Encrypt(0)
			if err != nil {
				return backoff.Permanent(err)
			}
			next, err := a.keys.Add(zero, ek)
			if err != nil {
				return backoff.Permanent(err)
			}
			inserted, err := a.store.Insert(ctx, userID, idx, next)
			if err != nil {
				return retryOrStop(err)
			}
			if !inserted {
				return errLostRace
			}
			return nil
		}
		next, err := a.keys.Add(cur.Ciphertext, ek)
		if err != nil {
			return backoff.Permanent(err)
		}
		swapped, err := a.store.CompareAndSwap(ctx, userID, idx, next, cur.Version)
		if err != nil {
			return retryOrStop(err)
		}
		if !swapped {
			return errLostRace
		}
		return nil
	}
	notify := func(err error, _ time.Duration) {
		if errors.Is(err, errLostRace) {
			casRetriesTotal.Inc()
		}
	}

	err := backoff.RetryNotify(op, policy, notify)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errLostRace):
		return perr.Wrapf(err, perr.ErrorCodeConflict, "interest: tag index %d still contended after %d attempts", idx, a.cfg.Attempts)
	default:
		return err
	}
}

// retryOrStop retries transient store conflicts and stops on everything else
func retryOrStop(err error) error {
	if perr.IsCode(err, perr.ErrorCodeConflict) {
		return err
	}
	return backoff.Permanent(err)
}

func outcome(err error) string {
	switch {
	case perr.IsCode(err, perr.ErrorCodeConflict):
		return "conflict"
	case perr.IsCode(err, perr.ErrorCodeUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

// Interests decrypts a user's entries; entries that fail to decrypt are skipped
func (a *Accumulator) Interests(ctx context.Context, userID string) (map[int]int64, error) {
	if !a.keys.CanDecrypt() {
		return nil, phe.ErrKeyUnavailable
	}
	entries, err := a.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[int]int64, len(entries))
	for _, e := range entries {
		v, err := a.keys.Decrypt(e.Ciphertext)
		if err != nil {
			logger.C(ctx).Warn().Err(err).Int("tag_index", e.TagIndex).Msg("skipping undecryptable interest entry")
			continue
		}
		out[e.TagIndex] = v
	}
	return out, nil
}
