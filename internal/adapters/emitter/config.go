package emitter

import (
	"time"

	"interestd/internal/platform/config"
)

// ScorePath is the ingestion route relative to BaseURL
const ScorePath = "/api/v1/phe/score"

// Config tunes batching, read detection, and transport
type Config struct {
	// Batch coalesces events per article until Window elapses; false posts every event
	Batch  bool
	Window time.Duration

	// Dwell and Scroll must both be reached before a read fires; Poll is the check interval
	Dwell  time.Duration
	Scroll float64
	Poll   time.Duration

	BaseURL string
	Token   string
	Timeout time.Duration
}

// FromConfig reads EMITTER_* settings
func FromConfig(cfg config.Conf) Config {
	ec := cfg.Prefix("EMITTER_")
	return Config{
		Batch:   ec.MayBool("BATCH", true),
		Window:  ec.MayDuration("WINDOW", 2500*time.Millisecond),
		Dwell:   ec.MayDuration("DWELL", 10*time.Second),
		Scroll:  ec.MayFloat64("SCROLL", 0.6),
		Poll:    ec.MayDuration("POLL", time.Second),
		BaseURL: ec.MayString("BASE_URL", "http://localhost:4000"),
		Token:   ec.MayString("TOKEN", ""),
		Timeout: ec.MayDuration("TIMEOUT", 5*time.Second),
	}
}

func (c Config) immediate() bool { return !c.Batch || c.Window <= 0 }
