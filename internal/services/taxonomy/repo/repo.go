// Package repo reads tag assignments owned by the taxonomy subsystem
package repo

import (
	"context"

	"interestd/internal/modkit/repokit"
	"interestd/internal/platform/store"
)

// Repo defines the read contract over tags and article_tags
type Repo interface {
	Indices(ctx context.Context, articleID string) ([]int, error)
	IndicesMany(ctx context.Context, articleIDs []string) (map[string][]int, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Indices(ctx context.Context, articleID string) ([]int, error) {
	const sql = `
select distinct t.idx
from article_tags at
join tags t on t.id = at.tag_id
where at.article_id = $1 and t.active
order by t.idx
`
	return store.Many(ctx, r.q, scanIndex, sql, articleID)
}

func (r *queries) IndicesMany(ctx context.Context, articleIDs []string) (map[string][]int, error) {
	const sql = `
select at.article_id, t.idx
from article_tags at
join tags t on t.id = at.tag_id
where at.article_id = any($1) and t.active
group by at.article_id, t.idx
order by at.article_id, t.idx
`
	pairs, err := store.Many(ctx, r.q, scanPair, sql, articleIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]int)
	for _, p := range pairs {
		out[p.articleID] = append(out[p.articleID], p.idx)
	}
	return out, nil
}

type tagPair struct {
	articleID string
	idx       int
}

func scanIndex(row store.Row) (int, error) {
	var idx int
	err := row.Scan(&idx)
	return idx, err
}

func scanPair(row store.Row) (tagPair, error) {
	var p tagPair
	err := row.Scan(&p.articleID, &p.idx)
	return p, err
}
