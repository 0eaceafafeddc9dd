// Package repokit binds domain repositories to the store seams
package repokit

import "interestd/internal/platform/store"

// Queryer is the read and write surface a bound repo sees
type Queryer = store.RowQuerier

// TxRunner is a Queryer that can also open transactions
type TxRunner = store.TxRunner

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result
	Row = store.Row

	// CommandTag reports rows affected by a write
	CommandTag = store.CommandTag
)
