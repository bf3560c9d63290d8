package module

import (
	"time"

	"worklog/internal/platform/config"
	svc "worklog/internal/services/credentials/service"
)

// Options controls the credentials module's tunables
type Options struct {
	MnemonicTTL  time.Duration
	ReapInterval time.Duration
}

// FromConfig reads credentials tunables under the WORKLOG_CREDENTIALS_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("WORKLOG_CREDENTIALS_")
	return Options{
		MnemonicTTL:  c.MayDuration("MNEMONIC_TTL", svc.DefaultMnemonicTTL),
		ReapInterval: c.MayDuration("REAP_INTERVAL", svc.DefaultReapInterval),
	}
}
