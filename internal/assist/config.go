package assist

import (
	"github.com/banshee-data/velocity.assist/internal/arbiter"
	"github.com/banshee-data/velocity.assist/internal/config"
	"github.com/banshee-data/velocity.assist/internal/roadscan"
	"github.com/banshee-data/velocity.assist/internal/traffic"
)

// Config bundles the per-component tuning for a session.
type Config struct {
	Scan    roadscan.Config
	Traffic traffic.Config
	Arbiter arbiter.Config
}

// DefaultConfig returns the built-in tuning for every component.
func DefaultConfig() Config {
	return ConfigFromTuning(config.EmptyTuningConfig())
}

// ConfigFromTuning builds a Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		Scan:    roadscan.ConfigFromTuning(cfg),
		Traffic: traffic.ConfigFromTuning(cfg),
		Arbiter: arbiter.ConfigFromTuning(cfg),
	}
}
