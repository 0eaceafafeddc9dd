// Package repo persists scoring weights in the app_settings table
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"interestd/internal/modkit/repokit"
	perr "interestd/internal/platform/errors"
	"interestd/internal/platform/store"
	"interestd/internal/services/scoring/domain"
)

// SettingsKey is the app_settings row holding the weights
const SettingsKey = "scoring.weights"

// Repo defines the repository contract for weights
type Repo interface {
	// Load returns the stored row; ok=false when none exists
	Load(ctx context.Context) (row Row, ok bool, err error)
	Save(ctx context.Context, w domain.Weights, updatedBy string) (Row, error)
}

// Row is one settings row decoded
type Row struct {
	Weights   domain.Weights
	UpdatedBy string
	UpdatedAt time.Time
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

func (r *queries) Load(ctx context.Context) (Row, bool, error) {
	const sql = `select value, updated_by, updated_at from app_settings where key = $1`
	out, ok, err := store.Maybe(ctx, r.q, scanRow, sql, SettingsKey)
	if err != nil {
		return Row{}, false, err
	}
	return out, ok, nil
}

func scanRow(row store.Row) (Row, error) {
	var (
		raw []byte
		out Row
	)
	if err := row.Scan(&raw, &out.UpdatedBy, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Row{}, err
		}
		return Row{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "scoring: load weights")
	}
	if err := json.Unmarshal(raw, &out.Weights); err != nil {
		return Row{}, perr.Wrap(err, perr.ErrorCodeDB, "scoring: stored weights are not valid json")
	}
	return out, nil
}

func (r *queries) Save(ctx context.Context, w domain.Weights, updatedBy string) (Row, error) {
	raw, err := json.Marshal(w)
	if err != nil {
		return Row{}, err
	}
	const sql = `
insert into app_settings (key, value, updated_by, updated_at)
values ($1, $2, $3, now())
on conflict (key) do update
set value = excluded.value, updated_by = excluded.updated_by, updated_at = excluded.updated_at
returning updated_at
`
	out := Row{Weights: w, UpdatedBy: updatedBy}
	if err := r.q.QueryRow(ctx, sql, SettingsKey, raw, updatedBy).Scan(&out.UpdatedAt); err != nil {
		return Row{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "scoring: save weights")
	}
	return out, nil
}
