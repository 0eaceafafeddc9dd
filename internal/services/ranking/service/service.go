// Package service ranks feed candidates by a user's decrypted interests
package service

import (
	"context"

	"interestd/internal/core/phe"
	"interestd/internal/core/ranking"
	"interestd/internal/platform/logger"
	"interestd/internal/services/ranking/domain"
	taxonomy "interestd/internal/services/taxonomy/domain"
)

// Config tunes ranking policy
type Config struct {
	// NearTie is the relative gap under which recency decides, default 0.10
	NearTie float64
	// MaxCandidates caps how many leading candidates are reordered; the rest keep their place
	MaxCandidates int
}

// Ranker implements domain.RankerPort
// every failure path returns the candidates unchanged
type Ranker struct {
	keys      *phe.Manager
	interests domain.InterestReader
	tags      taxonomy.Resolver
	cfg       Config
}

// New constructs a ranker; keys may be nil, in which case nothing is ever reordered
func New(keys *phe.Manager, interests domain.InterestReader, tags taxonomy.Resolver, cfg Config) *Ranker {
	if interests == nil || tags == nil {
		panic("ranking.Ranker requires an interest reader and a tag resolver")
	}
	if cfg.NearTie <= 0 {
		cfg.NearTie = ranking.DefaultNearTie
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 500
	}
	return &Ranker{keys: keys, interests: interests, tags: tags, cfg: cfg}
}

// Rank implements domain.RankerPort
func (r *Ranker) Rank(ctx context.Context, userID string, candidates []domain.Candidate) ([]domain.Candidate, bool) {
	log := logger.C(ctx)

	if len(candidates) < 2 {
		rankTotal.WithLabelValues("trivial").Inc()
		return candidates, false
	}
	if r.keys == nil || !r.keys.CanDecrypt() {
		rankTotal.WithLabelValues("no_key").Inc()
		return candidates, false
	}

	interests, err := r.interests.Interests(ctx, userID)
	if err != nil {
		rankTotal.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("ranking skipped: interests unavailable")
		return candidates, false
	}
	if !hasSignal(interests) {
		rankTotal.WithLabelValues("no_signal").Inc()
		return candidates, false
	}

	head, tail := candidates, []domain.Candidate(nil)
	if len(head) > r.cfg.MaxCandidates {
		head, tail = candidates[:r.cfg.MaxCandidates], candidates[r.cfg.MaxCandidates:]
	}

	ids := make([]string, len(head))
	for i, c := range head {
		ids[i] = c.ID
	}
	tagsOf, err := r.tags.TagIndicesMany(ctx, ids)
	if err != nil {
		rankTotal.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("ranking skipped: tag indices unavailable")
		return candidates, false
	}

	scored := make([]ranking.Scored[domain.Candidate], len(head))
	for i, c := range head {
		scored[i] = ranking.Scored[domain.Candidate]{
			Item:      c,
			Score:     Relevance(interests, tagsOf[c.ID]),
			CreatedAt: c.CreatedAt,
		}
	}
	ranking.Sort(scored, r.cfg.NearTie)

	out := make([]domain.Candidate, 0, len(candidates))
	out = append(out, ranking.Items(scored)...)
	out = append(out, tail...)
	rankTotal.WithLabelValues("ranked").Inc()
	return out, true
}

// Relevance sums interest over an article's tag indices; missing indices count 0
func Relevance(interests map[int]int64, idxs []int) int64 {
	var s int64
	for _, i := range idxs {
		s += interests[i]
	}
	return s
}

func hasSignal(m map[int]int64) bool {
	for _, v := range m {
		if v != 0 {
			return true
		}
	}
	return false
}
