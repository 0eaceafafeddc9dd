// Package modkit provides module wiring and core deps
package modkit

import (
	"interestd/internal/core/phe"
	"interestd/internal/modkit/repokit"
	"interestd/internal/platform/config"
	"interestd/internal/platform/logger"
	"interestd/internal/platform/store"
	tim "interestd/internal/platform/time"
)

// Deps are the process wide dependencies every module is built from
// PG and CH may be nil in tests; modules that need them check
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse

	// Keys is the process key manager, resolved once at startup
	Keys *phe.Manager
	// Clock drives TTLs and caches; nil means the wall clock
	Clock tim.Clock
}

// ClockOrReal returns Clock or the wall clock when unset
func (d Deps) ClockOrReal() tim.Clock {
	if d.Clock == nil {
		return tim.Real()
	}
	return d.Clock
}
