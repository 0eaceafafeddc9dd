package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"interestd/internal/platform/logger"
)

// pgxQuerier is what both *pgxpool.Pool and pgx.Tx offer
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgQuerier adapts pgx return types to the store interfaces
type pgQuerier struct{ q pgxQuerier }

func (p pgQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return p.q.Exec(ctx, sql, args...)
}

func (p pgQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := p.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (p pgQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return p.q.QueryRow(ctx, sql, args...)
}

// pgDB is the pooled TxRunner
type pgDB struct {
	pgQuerier
	pool *pgxpool.Pool
}

func (d *pgDB) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		return fn(pgQuerier{q: tx})
	})
}

func (d *pgDB) Ping(ctx context.Context) error { return d.pool.Ping(ctx) }

func (d *pgDB) Close() error {
	d.pool.Close()
	return nil
}

func openPG(ctx context.Context, cfg Config, log logger.Logger) (*pgDB, error) {
	pc, err := pgxpool.ParseConfig(cfg.PG.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.PG.MaxConns > 0 {
		pc.MaxConns = cfg.PG.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	pc.ConnConfig.Tracer = newQueryLog(log, cfg.PG.LogSQL, time.Duration(cfg.PG.SlowQueryMs)*time.Millisecond)

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("pg: pool: %w", err)
	}
	if err := pingWithRetry(ctx, pool, cfg.PG); err != nil {
		pool.Close()
		return nil, err
	}
	return &pgDB{pgQuerier: pgQuerier{q: pool}, pool: pool}, nil
}

// pingWithRetry waits out a database that is still starting
func pingWithRetry(ctx context.Context, p pinger, cfg PGConfig) error {
	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 150 * time.Millisecond
	eb.MaxInterval = 2 * time.Second
	eb.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(attempts-1)), ctx)

	err := backoff.Retry(func() error {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return p.Ping(pctx)
	}, policy)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("pg: ping failed after %d attempts: %w", attempts, err)
}

// queryLog is a pgx.QueryTracer: failed and slow statements log at warn,
// everything else at debug when verbose
type queryLog struct {
	log     logger.Logger
	verbose bool
	slow    time.Duration
}

type queryStartKey struct{}

type queryStart struct {
	sql string
	at  time.Time
}

func newQueryLog(log logger.Logger, verbose bool, slow time.Duration) *queryLog {
	return &queryLog{log: log.With().Str("component", "pg").Logger(), verbose: verbose, slow: slow}
}

func (l *queryLog) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: d.SQL, at: time.Now()})
}

func (l *queryLog) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	st, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := time.Since(st.at)
	slow := l.slow > 0 && elapsed >= l.slow

	var ev *zerolog.Event
	switch {
	case d.Err != nil && !errors.Is(d.Err, pgx.ErrNoRows):
		ev = l.log.Warn().Err(d.Err)
	case slow:
		ev = l.log.Warn()
	case l.verbose:
		ev = l.log.Debug()
	default:
		return
	}
	ev.Str("sql", compactSQL(st.sql)).
		Dur("elapsed", elapsed).
		Bool("slow", slow).
		Int64("rows", d.CommandTag.RowsAffected()).
		Msg("pg query")
}

// compactSQL folds runs of whitespace so statements log on one line
func compactSQL(s string) string { return strings.Join(strings.Fields(s), " ") }
