package traffic

import "github.com/banshee-data/velocity.assist/internal/config"

// LaneConfig tunes lane-change detection.
type LaneConfig struct {
	CheckIntervalTicks  int64
	MinSpeed            float64 // m/s
	HeadingToleranceDeg float64 // larger heading changes are turns
	LaneWidth           float64 // metres
	ChangeThreshold     float64 // lateral metres that count as a change
	CooldownTicks       int64
}

// OvertakeConfig tunes overtake tracking.
type OvertakeConfig struct {
	IntervalTicks  int64
	Radius         float64 // proximity query radius
	MaxScanned     int     // agents examined per scan
	MaxTracked     int     // tracking table cap
	SideDistance   float64 // forward offset beyond which an agent is ahead
	BehindDistance float64 // forward offset below -BehindDistance is behind
	SpeedMargin    float64 // m/s ego must exceed the agent by
	StaleTicks     int64
	CooldownTicks  int64
}

// FollowingConfig tunes following-distance monitoring.
type FollowingConfig struct {
	IntervalTicks int64
	ClearDistance float64 // lead distances at or beyond this are ignored
	MinSpeed      float64 // below this the gap is treated as clear
	CooldownTicks int64
	FloorSpeed    float64 // smoothing never targets below this
}

// Config groups the three detectors' tuning.
type Config struct {
	Lane      LaneConfig
	Overtake  OvertakeConfig
	Following FollowingConfig
}

// DefaultConfig returns the built-in traffic tuning.
func DefaultConfig() Config {
	return ConfigFromTuning(config.EmptyTuningConfig())
}

// ConfigFromTuning builds a Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		Lane: LaneConfig{
			CheckIntervalTicks:  cfg.GetLaneCheckIntervalTicks(),
			MinSpeed:            cfg.GetLaneMinSpeed(),
			HeadingToleranceDeg: cfg.GetLaneHeadingToleranceDeg(),
			LaneWidth:           cfg.GetLaneWidth(),
			ChangeThreshold:     cfg.GetLaneChangeThreshold(),
			CooldownTicks:       cfg.GetLaneChangeCooldownTicks(),
		},
		Overtake: OvertakeConfig{
			IntervalTicks:  cfg.GetOvertakeIntervalTicks(),
			Radius:         cfg.GetOvertakeRadius(),
			MaxScanned:     cfg.GetOvertakeMaxScanned(),
			MaxTracked:     cfg.GetOvertakeMaxTracked(),
			SideDistance:   cfg.GetOvertakeSideDistance(),
			BehindDistance: cfg.GetOvertakeBehindDistance(),
			SpeedMargin:    cfg.GetOvertakeSpeedMargin(),
			StaleTicks:     cfg.GetOvertakeStaleTicks(),
			CooldownTicks:  cfg.GetOvertakeCooldownTicks(),
		},
		Following: FollowingConfig{
			IntervalTicks: cfg.GetFollowingIntervalTicks(),
			ClearDistance: cfg.GetFollowingClearDistance(),
			MinSpeed:      cfg.GetFollowingMinSpeed(),
			CooldownTicks: cfg.GetFollowingCooldownTicks(),
			FloorSpeed:    cfg.GetFollowingFloorSpeed(),
		},
	}
}
