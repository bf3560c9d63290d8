package module

import "worklog/internal/platform/config"

// Options controls the tracking module's tunables
type Options struct {
	MaxMinuteOffset int
}

// FromConfig reads tracking tunables under the WORKLOG_TRACKING_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("WORKLOG_TRACKING_")
	return Options{
		MaxMinuteOffset: c.MayInt("MAX_MINUTE_OFFSET", 720),
	}
}
