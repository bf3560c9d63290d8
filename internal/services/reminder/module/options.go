package module

import (
	"time"

	"worklog/internal/platform/config"
)

// Options controls the reminder module's tunables
type Options struct {
	CheckInterval time.Duration
}

// FromConfig reads reminder tunables under the WORKLOG_REMINDER_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("WORKLOG_REMINDER_")
	return Options{
		CheckInterval: c.MayDuration("CHECK_INTERVAL", 3*time.Minute),
	}
}
