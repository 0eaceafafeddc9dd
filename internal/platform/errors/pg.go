package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values the repos care about
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgCannotConnectNow     = "57P03"
	pgAdminShutdown        = "57P01"
)

// sqlState returns the SQLSTATE of err's root cause, or ""
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsRetryable reports whether a database error is transient enough to retry
// the same statement. Local cancellation is never retryable
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch sqlState(err) {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return true
	case "":
	default:
		return false
	}

	// pgx reports some aborts only as text
	s := strings.ToLower(Root(err).Error())
	for _, frag := range []string{
		"commit unexpectedly resulted in rollback",
		"deadlock detected",
		"could not serialize access",
		"canceling statement due to lock timeout",
	} {
		if strings.Contains(s, frag) {
			return true
		}
	}
	return false
}

// FromPostgres wraps a database error with the code its SQLSTATE implies
// Retryable failures become Conflict so callers can rerun their read-modify-write
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	switch {
	case IsRetryable(err):
		return Wrap(err, ErrorCodeConflict, msg)
	case sqlState(err) == pgUniqueViolation:
		return Wrap(err, ErrorCodeDuplicateKey, msg)
	case sqlState(err) == pgCannotConnectNow, sqlState(err) == pgAdminShutdown:
		return Wrap(err, ErrorCodeUnavailable, msg)
	case sqlState(err) != "":
		return Wrap(err, ErrorCodeDB, msg)
	default:
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
}
