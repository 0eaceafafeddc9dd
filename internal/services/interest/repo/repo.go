// Package repo stores interest accumulator entries
package repo

import (
	"context"

	"interestd/internal/core/phe"
	"interestd/internal/modkit/repokit"
	perr "interestd/internal/platform/errors"
	"interestd/internal/platform/store"
	"interestd/internal/services/interest/domain"
)

type (
	// PG implements domain.Store using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[domain.Store] { return PG{} }

// Bind binds a Postgres queryer to the Store implementation
func (PG) Bind(q repokit.Queryer) domain.Store { return &queries{q: q} }

func (r *queries) Get(ctx context.Context, userID string, tagIndex int) (domain.Entry, bool, error) {
	const sql = `
select tag_index, ciphertext, version, updated_at
from interest_entries
where user_id = $1 and tag_index = $2
`
	e, ok, err := store.Maybe(ctx, r.q, scanEntry(userID), sql, userID, tagIndex)
	if err != nil {
		return domain.Entry{}, false, wrap(err, "interest: read entry")
	}
	return e, ok, nil
}

func (r *queries) Insert(ctx context.Context, userID string, tagIndex int, c phe.Ciphertext) (bool, error) {
	const sql = `
insert into interest_entries (user_id, tag_index, ciphertext, version, updated_at)
values ($1, $2, $3, 1, now())
on conflict (user_id, tag_index) do nothing
`
	tag, err := r.q.Exec(ctx, sql, userID, tagIndex, c.String())
	if err != nil {
		return false, wrap(err, "interest: insert entry")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *queries) CompareAndSwap(ctx context.Context, userID string, tagIndex int, c phe.Ciphertext, version int64) (bool, error) {
	const sql = `
update interest_entries
set ciphertext = $3, version = version + 1, updated_at = now()
where user_id = $1 and tag_index = $2 and version = $4
`
	tag, err := r.q.Exec(ctx, sql, userID, tagIndex, c.String(), version)
	if err != nil {
		return false, wrap(err, "interest: swap entry")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *queries) List(ctx context.Context, userID string) ([]domain.Entry, error) {
	const sql = `
select tag_index, ciphertext, version, updated_at
from interest_entries
where user_id = $1
order by tag_index
`
	out, err := store.Many(ctx, r.q, scanEntry(userID), sql, userID)
	if err != nil {
		return nil, wrap(err, "interest: list entries")
	}
	return out, nil
}

func scanEntry(userID string) store.ScanFunc[domain.Entry] {
	return func(row store.Row) (domain.Entry, error) {
		e := domain.Entry{UserID: userID}
		var c string
		if err := row.Scan(&e.TagIndex, &c, &e.Version, &e.UpdatedAt); err != nil {
			return domain.Entry{}, err
		}
		e.Ciphertext = phe.Ciphertext(c)
		return e, nil
	}
}

func wrap(err error, msg string) error { return perr.FromPostgres(err, msg) }
