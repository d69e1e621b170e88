package roadscan

import (
	"github.com/banshee-data/velocity.assist/internal/config"
	"github.com/banshee-data/velocity.assist/internal/curve"
)

// Config holds scanner tuning.
type Config struct {
	Curve curve.Model

	MinSpeed         float64 // m/s; slower vehicles are not scanned
	LookaheadSeconds float64 // lookahead metres per m/s
	LookaheadMin     float64 // metres
	LookaheadMax     float64 // metres
	SampleInterval   float64 // metres between samples
	SearchRadius     float64 // nearest-node query radius

	CurveCooldownTicks        int64   // ceiling, reached at or below CooldownReferenceSpeed
	CurveCooldownMinTicks     int64   // floor at high speed
	CooldownReferenceSpeed    float64 // m/s
	JunctionCooldownTicks     int64
	TrafficLightCooldownTicks int64

	SlowdownBaseDistance  float64 // metres
	SlowdownSpeedFactor   float64 // metres per m/s
	SlowdownMinDistance   float64
	SlowdownMaxDistance   float64
	SlowdownDurationTicks int64

	Units string // narration measurement system
}

// DefaultConfig returns the built-in scanner tuning.
func DefaultConfig() Config {
	return ConfigFromTuning(config.EmptyTuningConfig())
}

// ConfigFromTuning builds a Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		Curve:                     curve.ModelFromTuning(cfg),
		MinSpeed:                  cfg.GetScanMinSpeed(),
		LookaheadSeconds:          cfg.GetLookaheadSeconds(),
		LookaheadMin:              cfg.GetLookaheadMin(),
		LookaheadMax:              cfg.GetLookaheadMax(),
		SampleInterval:            cfg.GetScanSampleInterval(),
		SearchRadius:              cfg.GetNodeSearchRadius(),
		CurveCooldownTicks:        cfg.GetCurveCooldownTicks(),
		CurveCooldownMinTicks:     cfg.GetCurveCooldownMinTicks(),
		CooldownReferenceSpeed:    cfg.GetCooldownReferenceSpeed(),
		JunctionCooldownTicks:     cfg.GetJunctionCooldownTicks(),
		TrafficLightCooldownTicks: cfg.GetTrafficLightCooldownTicks(),
		SlowdownBaseDistance:      cfg.GetSlowdownBaseDistance(),
		SlowdownSpeedFactor:       cfg.GetSlowdownSpeedFactor(),
		SlowdownMinDistance:       cfg.GetSlowdownMinDistance(),
		SlowdownMaxDistance:       cfg.GetSlowdownMaxDistance(),
		SlowdownDurationTicks:     cfg.GetSlowdownDurationTicks(),
		Units:                     cfg.GetNarrationUnits(),
	}
}
