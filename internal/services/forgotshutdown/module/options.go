package module

import (
	"time"

	"worklog/internal/platform/config"
)

// Options controls the forgot-shutdown module's tunables
type Options struct {
	CheckInterval           time.Duration
	ThresholdPercentDefault float64
	HistoryWindow           int
}

// FromConfig reads forgot-shutdown tunables under the WORKLOG_FORGOTSHUTDOWN_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("WORKLOG_FORGOTSHUTDOWN_")
	return Options{
		CheckInterval:           c.MayDuration("CHECK_INTERVAL", 3*time.Minute),
		ThresholdPercentDefault: c.MayFloat64("THRESHOLD_PERCENT_DEFAULT", 150),
		HistoryWindow:           c.MayInt("HISTORY_WINDOW", 30),
	}
}
