package module

import (
	"strings"
	"time"

	"interestd/internal/platform/config"
	"interestd/internal/services/replay/service"
)

// Options holds configuration settings for the replay module
type Options struct {
	Store     string // memory or pg
	TTL       time.Duration
	SweepCron string
}

// FromConfig reads REPLAY_* settings
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("REPLAY_")
	return Options{
		Store:     strings.ToLower(rc.MayEnum("STORE", "memory", "memory", "pg")),
		TTL:       rc.MayDuration("TTL", service.DefaultTTL),
		SweepCron: rc.MayString("SWEEP_CRON", "@every 1m"),
	}
}
