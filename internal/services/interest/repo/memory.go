package repo

import (
	"context"
	"sort"
	"sync"

	"interestd/internal/core/phe"
	tim "interestd/internal/platform/time"
	"interestd/internal/services/interest/domain"
)

type key struct {
	user string
	idx  int
}

// Memory is an in-process Store with the same version semantics as PG
// The interest module falls back to it when no Postgres is configured;
// entries do not survive a restart
type Memory struct {
	mu    sync.Mutex
	clock tim.Clock
	m     map[key]domain.Entry
}

// NewMemory returns an empty in-process store stamping entries from clock; nil means the wall clock
func NewMemory(clock tim.Clock) *Memory {
	if clock == nil {
		clock = tim.Real()
	}
	return &Memory{clock: clock, m: make(map[key]domain.Entry)}
}

func (s *Memory) Get(_ context.Context, userID string, tagIndex int) (domain.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[key{userID, tagIndex}]
	return e, ok, nil
}

func (s *Memory) Insert(_ context.Context, userID string, tagIndex int, c phe.Ciphertext) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{userID, tagIndex}
	if _, ok := s.m[k]; ok {
		return false, nil
	}
	s.m[k] = domain.Entry{UserID: userID, TagIndex: tagIndex, Ciphertext: c, Version: 1, UpdatedAt: s.clock.Now()}
	return true, nil
}

func (s *Memory) CompareAndSwap(_ context.Context, userID string, tagIndex int, c phe.Ciphertext, version int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{userID, tagIndex}
	e, ok := s.m[k]
	if !ok || e.Version != version {
		return false, nil
	}
	e.Ciphertext, e.Version, e.UpdatedAt = c, e.Version+1, s.clock.Now()
	s.m[k] = e
	return true, nil
}

func (s *Memory) List(_ context.Context, userID string) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Entry
	for k, e := range s.m {
		if k.user == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TagIndex < out[j].TagIndex })
	return out, nil
}

// Len returns the number of stored entries
func (s *Memory) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
