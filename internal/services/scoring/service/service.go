// Package service owns the scoring weights: a read-through cache over the settings row
package service

import (
	"context"
	"sync"
	"time"

	"interestd/internal/modkit/repokit"
	"interestd/internal/platform/logger"
	"interestd/internal/platform/net/http/bind"
	tim "interestd/internal/platform/time"
	"interestd/internal/services/scoring/domain"
	"interestd/internal/services/scoring/repo"
)

// Config for the weights service
type Config struct {
	// CacheTTL bounds how stale Weights may be on other replicas
	CacheTTL time.Duration
}

// Service implements domain.ReaderPort and domain.AdminPort
type Service struct {
	repo  repo.Repo
	clock tim.Clock
	cfg   Config

	mu      sync.RWMutex
	cached  domain.Snapshot
	fetched time.Time
	valid   bool
	// gen counts Sets; a refresh that raced one is dropped
	gen uint64
}

// New constructs the service; db and binder are required
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], clock tim.Clock, cfg Config) *Service {
	if db == nil {
		panic("scoring.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("scoring.Service requires a non nil Repo binder")
	}
	if clock == nil {
		clock = tim.Real()
	}
	if cfg.CacheTTL < 0 {
		cfg.CacheTTL = 0
	}
	return &Service{repo: repokit.MustBind(binder, db), clock: clock, cfg: cfg}
}

// Weights returns the current weights, served from cache while fresh
func (s *Service) Weights(ctx context.Context) (domain.Weights, error) {
	snap, err := s.Get(ctx)
	if err != nil {
		return domain.Weights{}, err
	}
	return snap.Weights, nil
}

// Get returns the weights with audit fields, defaults when nothing is stored
func (s *Service) Get(ctx context.Context) (domain.Snapshot, error) {
	now := s.clock.Now()
	s.mu.RLock()
	if s.valid && now.Sub(s.fetched) < s.cfg.CacheTTL {
		snap := s.cached
		s.mu.RUnlock()
		return snap, nil
	}
	gen := s.gen
	s.mu.RUnlock()

	row, ok, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap := domain.Snapshot{Weights: domain.DefaultWeights}
	if ok {
		snap = domain.Snapshot{Weights: row.Weights, UpdatedBy: row.UpdatedBy, UpdatedAt: tim.Ptr(row.UpdatedAt)}
	}
	s.mu.Lock()
	if s.gen == gen {
		s.cached, s.fetched, s.valid = snap, now, true
	}
	s.mu.Unlock()
	return snap, nil
}

// Set validates and persists w, then refreshes the local cache
func (s *Service) Set(ctx context.Context, w domain.Weights, updatedBy string) (domain.Snapshot, error) {
	if err := bind.Validate(w); err != nil {
		return domain.Snapshot{}, err
	}
	row, err := s.repo.Save(ctx, w, updatedBy)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap := domain.Snapshot{Weights: row.Weights, UpdatedBy: row.UpdatedBy, UpdatedAt: tim.Ptr(row.UpdatedAt)}
	s.mu.Lock()
	s.cached, s.fetched, s.valid = snap, s.clock.Now(), true
	s.gen++
	s.mu.Unlock()

	logger.Named("scoring").Info().
		Str("updated_by", updatedBy).
		Int("open", w.Open).Int("read", w.Read).Int("interested", w.Interested).
		Msg("scoring weights updated")
	return snap, nil
}
