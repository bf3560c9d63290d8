package module

import (
	"time"

	"worklog/internal/platform/config"
)

// Options controls the auto-shutdown module's tunables
type Options struct {
	CheckInterval time.Duration
}

// FromConfig reads auto-shutdown tunables under the WORKLOG_AUTOSHUTDOWN_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("WORKLOG_AUTOSHUTDOWN_")
	return Options{
		CheckInterval: c.MayDuration("CHECK_INTERVAL", 3*time.Minute),
	}
}
