// Package service resolves article tag indices with input normalization
package service

import (
	"context"
	"sort"

	"interestd/internal/core/normalize"
	"interestd/internal/modkit/repokit"
	perr "interestd/internal/platform/errors"
	"interestd/internal/services/taxonomy/repo"
)

// Service implements domain.Resolver
type Service struct {
	repo repo.Repo
}

// New constructs the resolver; db and binder are required
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Service {
	if db == nil {
		panic("taxonomy.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("taxonomy.Service requires a non nil Repo binder")
	}
	return &Service{repo: repokit.MustBind(binder, db)}
}

// NormalizeArticleID puts an article id in canonical id form
func NormalizeArticleID(id string) string {
	return normalize.ID(id)
}

// TagIndices implements domain.Resolver
func (s *Service) TagIndices(ctx context.Context, articleID string) ([]int, error) {
	id := NormalizeArticleID(articleID)
	if id == "" {
		return nil, nil
	}
	xs, err := s.repo.Indices(ctx, id)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "taxonomy: resolve tag indices")
	}
	return canonical(xs), nil
}

// TagIndicesMany implements domain.Resolver
func (s *Service) TagIndicesMany(ctx context.Context, articleIDs []string) (map[string][]int, error) {
	// callers look results up by the id they passed
	byNorm := make(map[string][]string, len(articleIDs))
	ids := make([]string, 0, len(articleIDs))
	for _, raw := range articleIDs {
		id := NormalizeArticleID(raw)
		if id == "" {
			continue
		}
		if _, seen := byNorm[id]; !seen {
			ids = append(ids, id)
		}
		byNorm[id] = append(byNorm[id], raw)
	}
	out := make(map[string][]int, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	got, err := s.repo.IndicesMany(ctx, ids)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "taxonomy: resolve tag indices")
	}
	for id, xs := range got {
		xs = canonical(xs)
		if len(xs) == 0 {
			continue
		}
		for _, raw := range byNorm[id] {
			out[raw] = xs
		}
	}
	return out, nil
}

// canonical sorts, dedupes, and drops negative indices
func canonical(xs []int) []int {
	if len(xs) == 0 {
		return nil
	}
	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	out := cp[:0]
	for i, x := range cp {
		if x < 0 || (i > 0 && x == cp[i-1]) {
			continue
		}
		out = append(out, x)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
