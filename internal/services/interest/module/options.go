package module

import (
	"time"

	"interestd/internal/platform/config"
)

// Options holds configuration settings for the interest module
type Options struct {
	CASAttempts int
	CASBase     time.Duration
	CASMax      time.Duration
}

// FromConfig reads SCORING_CAS_* settings
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("SCORING_")
	return Options{
		CASAttempts: sc.MayInt("CAS_ATTEMPTS", 5),
		CASBase:     sc.MayDuration("CAS_BASE", 10*time.Millisecond),
		CASMax:      sc.MayDuration("CAS_MAX", 200*time.Millisecond),
	}
}
