package module

import (
	"interestd/internal/core/ranking"
	"interestd/internal/platform/config"
)

// Options holds configuration settings for the ranking module
type Options struct {
	NearTie       float64
	MaxCandidates int
}

// FromConfig reads RANKING_* settings
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("RANKING_")
	return Options{
		NearTie:       rc.MayFloat64("NEAR_TIE", ranking.DefaultNearTie),
		MaxCandidates: rc.MayInt("MAX_CANDIDATES", 500),
	}
}
