package repo

import (
	"context"
	"time"

	"interestd/internal/modkit/repokit"
	perr "interestd/internal/platform/errors"
	"interestd/internal/services/replay/domain"
)

type (
	// PG implements domain.Store over replay_nonces
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[domain.Store] { return PG{} }

// Bind binds a Postgres queryer to the Store implementation
func (PG) Bind(q repokit.Queryer) domain.Store { return &queries{q: q} }

func (r *queries) Claim(ctx context.Context, userID, nonce string, now, expires time.Time) (bool, error) {
	// an expired row is overwritten in place; a live row makes the upsert a no-op
	const sql = `
insert into replay_nonces (user_id, nonce, expires_at)
values ($1, $2, $4)
on conflict (user_id, nonce) do update
set expires_at = excluded.expires_at
where replay_nonces.expires_at <= $3
`
	tag, err := r.q.Exec(ctx, sql, userID, nonce, now, expires)
	if err != nil {
		return false, perr.Wrap(err, perr.ErrorCodeUnavailable, "replay: claim nonce")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *queries) Sweep(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `delete from replay_nonces where expires_at <= $1`, now)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeUnavailable, "replay: sweep nonces")
	}
	return tag.RowsAffected(), nil
}
