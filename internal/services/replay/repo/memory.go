// Package repo stores replay nonce records in process or in Postgres
package repo

import (
	"context"
	"sync"
	"time"
)

type key struct{ user, nonce string }

// Memory is the in-process nonce table; a restart forgets every record
type Memory struct {
	mu sync.Mutex
	m  map[key]time.Time
}

// NewMemory returns an empty table
func NewMemory() *Memory { return &Memory{m: make(map[key]time.Time)} }

func (s *Memory) Claim(_ context.Context, userID, nonce string, now, expires time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{userID, nonce}
	if exp, ok := s.m[k]; ok && exp.After(now) {
		return false, nil
	}
	s.m[k] = expires
	return true, nil
}

func (s *Memory) Sweep(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, exp := range s.m {
		if !exp.After(now) {
			delete(s.m, k)
			n++
		}
	}
	return n, nil
}

// Len returns the number of records, live or not
func (s *Memory) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
