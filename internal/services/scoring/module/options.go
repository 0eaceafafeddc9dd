package module

import (
	"time"

	"interestd/internal/platform/config"
)

// Options holds configuration settings for the scoring module
type Options struct {
	CacheTTL time.Duration
}

// FromConfig reads SCORING_* settings
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("SCORING_")
	return Options{
		CacheTTL: sc.MayDuration("CACHE_TTL", 30*time.Second),
	}
}
