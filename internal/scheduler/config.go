package scheduler

import (
	"time"

	appconfig "github.com/smallbiznis/ledgerdesk/internal/config"
)

// Config controls the background refresh loop.
type Config struct {
	RunInterval time.Duration
	RunTimeout  time.Duration
	WindowDays  int
}

func DefaultConfig() Config {
	return Config{
		RunInterval: 5 * time.Minute,
		RunTimeout:  2 * time.Minute,
		WindowDays:  180,
	}
}

func ProvideConfig(cfg appconfig.Config) Config {
	out := Config{
		RunInterval: time.Duration(cfg.RefreshInterval) * time.Second,
		WindowDays:  cfg.RefreshWindowDays,
	}
	return out.withDefaults()
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.RunTimeout <= 0 {
		c.RunTimeout = defaults.RunTimeout
	}
	if c.WindowDays <= 0 {
		c.WindowDays = defaults.WindowDays
	}
	return c
}
