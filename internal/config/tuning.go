package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/velocity.assist/internal/units"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// The Get* accessors carry the same values so a partial or empty config is
// always usable.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig is the root configuration for assist tuning parameters.
// Every field is optional; nil means "use the default". None of these
// constants is load-bearing beyond relative ordering, so they live here
// rather than as hard invariants in the components.
type TuningConfig struct {
	// Curve model params
	CurveNoneThresholdDeg *float64 `json:"curve_none_threshold_deg,omitempty"` // Heading delta below which no curve is reported (degrees)
	CurveMinSafeSpeed     *float64 `json:"curve_min_safe_speed,omitempty"`     // Floor for any recommended curve speed (m/s)
	DefaultFriction       *float64 `json:"default_friction,omitempty"`         // Tyre-road friction used when the weather collaborator is silent

	// Road scanner params
	ScanMinSpeed              *float64 `json:"scan_min_speed,omitempty"`               // Below this speed the road scanner is idle (m/s)
	LookaheadSeconds          *float64 `json:"lookahead_seconds,omitempty"`            // Lookahead distance per m/s of speed
	LookaheadMin              *float64 `json:"lookahead_min,omitempty"`                // Lookahead lower bound (metres)
	LookaheadMax              *float64 `json:"lookahead_max,omitempty"`                // Lookahead upper bound (metres)
	ScanSampleInterval        *float64 `json:"scan_sample_interval,omitempty"`         // Spacing between road samples (metres)
	NodeSearchRadius          *float64 `json:"node_search_radius,omitempty"`           // Radius for nearest-node queries (metres)
	CurveCooldownTicks        *int64   `json:"curve_cooldown_ticks,omitempty"`         // Curve narration cooldown ceiling at low speed
	CurveCooldownMinTicks     *int64   `json:"curve_cooldown_min_ticks,omitempty"`     // Curve narration cooldown floor at high speed
	CooldownReferenceSpeed    *float64 `json:"cooldown_reference_speed,omitempty"`     // Speed at which the curve cooldown equals its ceiling (m/s)
	JunctionCooldownTicks     *int64   `json:"junction_cooldown_ticks,omitempty"`      // Junction narration cooldown
	TrafficLightCooldownTicks *int64   `json:"traffic_light_cooldown_ticks,omitempty"` // Traffic-light narration cooldown
	SlowdownBaseDistance      *float64 `json:"slowdown_base_distance,omitempty"`       // Minimum slowdown-trigger distance before severity scaling (metres)
	SlowdownSpeedFactor       *float64 `json:"slowdown_speed_factor,omitempty"`        // Slowdown-trigger distance per m/s of speed
	SlowdownMinDistance       *float64 `json:"slowdown_min_distance,omitempty"`        // Slowdown-trigger distance lower bound (metres)
	SlowdownMaxDistance       *float64 `json:"slowdown_max_distance,omitempty"`        // Slowdown-trigger distance upper bound (metres)
	SlowdownDurationTicks     *int64   `json:"slowdown_duration_ticks,omitempty"`      // How long a curve slowdown holds

	// Traffic awareness params
	LaneCheckIntervalTicks  *int64   `json:"lane_check_interval_ticks,omitempty"`  // Ticks between lane-change checks
	LaneMinSpeed            *float64 `json:"lane_min_speed,omitempty"`             // Below this speed lane tracking resyncs instead of checking (m/s)
	LaneHeadingToleranceDeg *float64 `json:"lane_heading_tolerance_deg,omitempty"` // Heading change treated as a turn rather than a lane change
	LaneWidth               *float64 `json:"lane_width,omitempty"`                 // Nominal lane width (metres)
	LaneChangeThreshold     *float64 `json:"lane_change_threshold,omitempty"`      // Lateral displacement that flags a lane change (metres)
	LaneChangeCooldownTicks *int64   `json:"lane_change_cooldown_ticks,omitempty"` // Lane-change narration cooldown
	OvertakeIntervalTicks   *int64   `json:"overtake_interval_ticks,omitempty"`    // Ticks between overtake scans
	OvertakeRadius          *float64 `json:"overtake_radius,omitempty"`            // Proximity query radius for overtakes (metres)
	OvertakeMaxScanned      *int     `json:"overtake_max_scanned,omitempty"`       // Agents examined per scan
	OvertakeMaxTracked      *int     `json:"overtake_max_tracked,omitempty"`       // Overtake table size cap
	OvertakeSideDistance    *float64 `json:"overtake_side_distance,omitempty"`     // Forward offset beyond which an agent is Ahead (metres)
	OvertakeBehindDistance  *float64 `json:"overtake_behind_distance,omitempty"`   // Rearward offset beyond which an agent is Behind (metres)
	OvertakeSpeedMargin     *float64 `json:"overtake_speed_margin,omitempty"`      // Ego speed excess over the agent required to count an overtake (m/s)
	OvertakeStaleTicks      *int64   `json:"overtake_stale_ticks,omitempty"`       // Age after which an overtake record is evicted
	OvertakeCooldownTicks   *int64   `json:"overtake_cooldown_ticks,omitempty"`    // Overtake narration cooldown
	FollowingIntervalTicks  *int64   `json:"following_interval_ticks,omitempty"`   // Ticks between following-distance evaluations
	FollowingClearDistance  *float64 `json:"following_clear_distance,omitempty"`   // Lead distance at or above which the road is clear (metres)
	FollowingMinSpeed       *float64 `json:"following_min_speed,omitempty"`        // Own speed below which the time gap is unbounded (m/s)
	FollowingCooldownTicks  *int64   `json:"following_cooldown_ticks,omitempty"`   // Following band narration cooldown
	FollowingFloorSpeed     *float64 `json:"following_floor_speed,omitempty"`      // Lowest speed the following monitor will request (m/s)

	// Speed arbiter params
	MinSpeed           *float64 `json:"min_speed,omitempty"`           // Lowest speed the arbiter will command (m/s)
	MaxSpeed           *float64 `json:"max_speed,omitempty"`           // Highest speed the arbiter will command (m/s)
	SpeedEpsilon       *float64 `json:"speed_epsilon,omitempty"`       // Setter change threshold below which state stays clean
	ActuationThreshold *float64 `json:"actuation_threshold,omitempty"` // Effective speed change that forces re-actuation (m/s)
	CeilingHeadroom    *float64 `json:"ceiling_headroom,omitempty"`    // Ceiling speed as a multiple of the effective speed
	MaxMultiplier      *float64 `json:"max_multiplier,omitempty"`      // Upper clamp applied to every multiplier

	// Narration params
	NarrationUnits *string `json:"narration_units,omitempty"` // Units used in spoken distances and speeds: metric or imperial
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }
func ptrInt64(v int64) *int64       { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field populated
// from the built-in defaults.
func DefaultTuningConfig() *TuningConfig {
	e := EmptyTuningConfig()
	return &TuningConfig{
		CurveNoneThresholdDeg:     ptrFloat64(e.GetCurveNoneThresholdDeg()),
		CurveMinSafeSpeed:         ptrFloat64(e.GetCurveMinSafeSpeed()),
		DefaultFriction:           ptrFloat64(e.GetDefaultFriction()),
		ScanMinSpeed:              ptrFloat64(e.GetScanMinSpeed()),
		LookaheadSeconds:          ptrFloat64(e.GetLookaheadSeconds()),
		LookaheadMin:              ptrFloat64(e.GetLookaheadMin()),
		LookaheadMax:              ptrFloat64(e.GetLookaheadMax()),
		ScanSampleInterval:        ptrFloat64(e.GetScanSampleInterval()),
		NodeSearchRadius:          ptrFloat64(e.GetNodeSearchRadius()),
		CurveCooldownTicks:        ptrInt64(e.GetCurveCooldownTicks()),
		CurveCooldownMinTicks:     ptrInt64(e.GetCurveCooldownMinTicks()),
		CooldownReferenceSpeed:    ptrFloat64(e.GetCooldownReferenceSpeed()),
		JunctionCooldownTicks:     ptrInt64(e.GetJunctionCooldownTicks()),
		TrafficLightCooldownTicks: ptrInt64(e.GetTrafficLightCooldownTicks()),
		SlowdownBaseDistance:      ptrFloat64(e.GetSlowdownBaseDistance()),
		SlowdownSpeedFactor:       ptrFloat64(e.GetSlowdownSpeedFactor()),
		SlowdownMinDistance:       ptrFloat64(e.GetSlowdownMinDistance()),
		SlowdownMaxDistance:       ptrFloat64(e.GetSlowdownMaxDistance()),
		SlowdownDurationTicks:     ptrInt64(e.GetSlowdownDurationTicks()),
		LaneCheckIntervalTicks:    ptrInt64(e.GetLaneCheckIntervalTicks()),
		LaneMinSpeed:              ptrFloat64(e.GetLaneMinSpeed()),
		LaneHeadingToleranceDeg:   ptrFloat64(e.GetLaneHeadingToleranceDeg()),
		LaneWidth:                 ptrFloat64(e.GetLaneWidth()),
		LaneChangeThreshold:       ptrFloat64(e.GetLaneChangeThreshold()),
		LaneChangeCooldownTicks:   ptrInt64(e.GetLaneChangeCooldownTicks()),
		OvertakeIntervalTicks:     ptrInt64(e.GetOvertakeIntervalTicks()),
		OvertakeRadius:            ptrFloat64(e.GetOvertakeRadius()),
		OvertakeMaxScanned:        ptrInt(e.GetOvertakeMaxScanned()),
		OvertakeMaxTracked:        ptrInt(e.GetOvertakeMaxTracked()),
		OvertakeSideDistance:      ptrFloat64(e.GetOvertakeSideDistance()),
		OvertakeBehindDistance:    ptrFloat64(e.GetOvertakeBehindDistance()),
		OvertakeSpeedMargin:       ptrFloat64(e.GetOvertakeSpeedMargin()),
		OvertakeStaleTicks:        ptrInt64(e.GetOvertakeStaleTicks()),
		OvertakeCooldownTicks:     ptrInt64(e.GetOvertakeCooldownTicks()),
		FollowingIntervalTicks:    ptrInt64(e.GetFollowingIntervalTicks()),
		FollowingClearDistance:    ptrFloat64(e.GetFollowingClearDistance()),
		FollowingMinSpeed:         ptrFloat64(e.GetFollowingMinSpeed()),
		FollowingCooldownTicks:    ptrInt64(e.GetFollowingCooldownTicks()),
		FollowingFloorSpeed:       ptrFloat64(e.GetFollowingFloorSpeed()),
		MinSpeed:                  ptrFloat64(e.GetMinSpeed()),
		MaxSpeed:                  ptrFloat64(e.GetMaxSpeed()),
		SpeedEpsilon:              ptrFloat64(e.GetSpeedEpsilon()),
		ActuationThreshold:        ptrFloat64(e.GetActuationThreshold()),
		CeilingHeadroom:           ptrFloat64(e.GetCeilingHeadroom()),
		MaxMultiplier:             ptrFloat64(e.GetMaxMultiplier()),
		NarrationUnits:            ptrString(e.GetNarrationUnits()),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are usable. Only fields
// that are set are checked; relative bounds use the effective values.
func (c *TuningConfig) Validate() error {
	if c.DefaultFriction != nil {
		if *c.DefaultFriction <= 0 || *c.DefaultFriction > 2 {
			return fmt.Errorf("default_friction must be in (0, 2], got %f", *c.DefaultFriction)
		}
	}
	if c.CurveNoneThresholdDeg != nil {
		if *c.CurveNoneThresholdDeg < 0 || *c.CurveNoneThresholdDeg >= 25 {
			return fmt.Errorf("curve_none_threshold_deg must be in [0, 25), got %f", *c.CurveNoneThresholdDeg)
		}
	}
	if c.ScanSampleInterval != nil && *c.ScanSampleInterval <= 0 {
		return fmt.Errorf("scan_sample_interval must be positive, got %f", *c.ScanSampleInterval)
	}
	if c.GetLookaheadMin() <= 0 || c.GetLookaheadMin() > c.GetLookaheadMax() {
		return fmt.Errorf("lookahead bounds invalid: min %f, max %f", c.GetLookaheadMin(), c.GetLookaheadMax())
	}
	if c.GetSlowdownMinDistance() < 0 || c.GetSlowdownMinDistance() > c.GetSlowdownMaxDistance() {
		return fmt.Errorf("slowdown distance bounds invalid: min %f, max %f", c.GetSlowdownMinDistance(), c.GetSlowdownMaxDistance())
	}
	if c.GetCurveCooldownMinTicks() < 0 || c.GetCurveCooldownMinTicks() > c.GetCurveCooldownTicks() {
		return fmt.Errorf("curve cooldown bounds invalid: min %d, max %d", c.GetCurveCooldownMinTicks(), c.GetCurveCooldownTicks())
	}
	if c.LaneWidth != nil && *c.LaneWidth <= 0 {
		return fmt.Errorf("lane_width must be positive, got %f", *c.LaneWidth)
	}
	if c.LaneChangeThreshold != nil && *c.LaneChangeThreshold <= 0 {
		return fmt.Errorf("lane_change_threshold must be positive, got %f", *c.LaneChangeThreshold)
	}
	if c.OvertakeMaxScanned != nil && *c.OvertakeMaxScanned < 0 {
		return fmt.Errorf("overtake_max_scanned must be non-negative, got %d", *c.OvertakeMaxScanned)
	}
	if c.OvertakeMaxTracked != nil && *c.OvertakeMaxTracked < 0 {
		return fmt.Errorf("overtake_max_tracked must be non-negative, got %d", *c.OvertakeMaxTracked)
	}
	if c.GetMinSpeed() < 0 || c.GetMinSpeed() >= c.GetMaxSpeed() {
		return fmt.Errorf("speed bounds invalid: min %f, max %f", c.GetMinSpeed(), c.GetMaxSpeed())
	}
	if c.CeilingHeadroom != nil && *c.CeilingHeadroom < 1 {
		return fmt.Errorf("ceiling_headroom must be at least 1, got %f", *c.CeilingHeadroom)
	}
	if c.MaxMultiplier != nil && *c.MaxMultiplier <= 0 {
		return fmt.Errorf("max_multiplier must be positive, got %f", *c.MaxMultiplier)
	}
	if c.NarrationUnits != nil && !units.IsValidSystem(*c.NarrationUnits) {
		return fmt.Errorf("narration_units must be one of %s, got %q", units.GetValidSystemsString(), *c.NarrationUnits)
	}
	return nil
}

// GetCurveNoneThresholdDeg returns the curve_none_threshold_deg value or the default.
func (c *TuningConfig) GetCurveNoneThresholdDeg() float64 {
	if c.CurveNoneThresholdDeg == nil {
		return 8.0
	}
	return *c.CurveNoneThresholdDeg
}

// GetCurveMinSafeSpeed returns the curve_min_safe_speed value or the default.
func (c *TuningConfig) GetCurveMinSafeSpeed() float64 {
	if c.CurveMinSafeSpeed == nil {
		return 2.0
	}
	return *c.CurveMinSafeSpeed
}

// GetDefaultFriction returns the default_friction value or the default.
func (c *TuningConfig) GetDefaultFriction() float64 {
	if c.DefaultFriction == nil {
		return 0.8
	}
	return *c.DefaultFriction
}

// GetScanMinSpeed returns the scan_min_speed value or the default.
func (c *TuningConfig) GetScanMinSpeed() float64 {
	if c.ScanMinSpeed == nil {
		return 3.0
	}
	return *c.ScanMinSpeed
}

// GetLookaheadSeconds returns the lookahead_seconds value or the default.
func (c *TuningConfig) GetLookaheadSeconds() float64 {
	if c.LookaheadSeconds == nil {
		return 8.0
	}
	return *c.LookaheadSeconds
}

// GetLookaheadMin returns the lookahead_min value or the default.
func (c *TuningConfig) GetLookaheadMin() float64 {
	if c.LookaheadMin == nil {
		return 50.0
	}
	return *c.LookaheadMin
}

// GetLookaheadMax returns the lookahead_max value or the default.
func (c *TuningConfig) GetLookaheadMax() float64 {
	if c.LookaheadMax == nil {
		return 300.0
	}
	return *c.LookaheadMax
}

// GetScanSampleInterval returns the scan_sample_interval value or the default.
func (c *TuningConfig) GetScanSampleInterval() float64 {
	if c.ScanSampleInterval == nil {
		return 25.0
	}
	return *c.ScanSampleInterval
}

// GetNodeSearchRadius returns the node_search_radius value or the default.
func (c *TuningConfig) GetNodeSearchRadius() float64 {
	if c.NodeSearchRadius == nil {
		return 15.0
	}
	return *c.NodeSearchRadius
}

// GetCurveCooldownTicks returns the curve_cooldown_ticks value or the default.
func (c *TuningConfig) GetCurveCooldownTicks() int64 {
	if c.CurveCooldownTicks == nil {
		return 300
	}
	return *c.CurveCooldownTicks
}

// GetCurveCooldownMinTicks returns the curve_cooldown_min_ticks value or the default.
func (c *TuningConfig) GetCurveCooldownMinTicks() int64 {
	if c.CurveCooldownMinTicks == nil {
		return 100
	}
	return *c.CurveCooldownMinTicks
}

// GetCooldownReferenceSpeed returns the cooldown_reference_speed value or the default.
func (c *TuningConfig) GetCooldownReferenceSpeed() float64 {
	if c.CooldownReferenceSpeed == nil {
		return 10.0
	}
	return *c.CooldownReferenceSpeed
}

// GetJunctionCooldownTicks returns the junction_cooldown_ticks value or the default.
func (c *TuningConfig) GetJunctionCooldownTicks() int64 {
	if c.JunctionCooldownTicks == nil {
		return 200
	}
	return *c.JunctionCooldownTicks
}

// GetTrafficLightCooldownTicks returns the traffic_light_cooldown_ticks value or the default.
func (c *TuningConfig) GetTrafficLightCooldownTicks() int64 {
	if c.TrafficLightCooldownTicks == nil {
		return 200
	}
	return *c.TrafficLightCooldownTicks
}

// GetSlowdownBaseDistance returns the slowdown_base_distance value or the default.
func (c *TuningConfig) GetSlowdownBaseDistance() float64 {
	if c.SlowdownBaseDistance == nil {
		return 40.0
	}
	return *c.SlowdownBaseDistance
}

// GetSlowdownSpeedFactor returns the slowdown_speed_factor value or the default.
func (c *TuningConfig) GetSlowdownSpeedFactor() float64 {
	if c.SlowdownSpeedFactor == nil {
		return 3.0
	}
	return *c.SlowdownSpeedFactor
}

// GetSlowdownMinDistance returns the slowdown_min_distance value or the default.
func (c *TuningConfig) GetSlowdownMinDistance() float64 {
	if c.SlowdownMinDistance == nil {
		return 30.0
	}
	return *c.SlowdownMinDistance
}

// GetSlowdownMaxDistance returns the slowdown_max_distance value or the default.
func (c *TuningConfig) GetSlowdownMaxDistance() float64 {
	if c.SlowdownMaxDistance == nil {
		return 200.0
	}
	return *c.SlowdownMaxDistance
}

// GetSlowdownDurationTicks returns the slowdown_duration_ticks value or the default.
func (c *TuningConfig) GetSlowdownDurationTicks() int64 {
	if c.SlowdownDurationTicks == nil {
		return 100
	}
	return *c.SlowdownDurationTicks
}

// GetLaneCheckIntervalTicks returns the lane_check_interval_ticks value or the default.
func (c *TuningConfig) GetLaneCheckIntervalTicks() int64 {
	if c.LaneCheckIntervalTicks == nil {
		return 10
	}
	return *c.LaneCheckIntervalTicks
}

// GetLaneMinSpeed returns the lane_min_speed value or the default.
func (c *TuningConfig) GetLaneMinSpeed() float64 {
	if c.LaneMinSpeed == nil {
		return 5.0
	}
	return *c.LaneMinSpeed
}

// GetLaneHeadingToleranceDeg returns the lane_heading_tolerance_deg value or the default.
func (c *TuningConfig) GetLaneHeadingToleranceDeg() float64 {
	if c.LaneHeadingToleranceDeg == nil {
		return 15.0
	}
	return *c.LaneHeadingToleranceDeg
}

// GetLaneWidth returns the lane_width value or the default.
func (c *TuningConfig) GetLaneWidth() float64 {
	if c.LaneWidth == nil {
		return 3.5
	}
	return *c.LaneWidth
}

// GetLaneChangeThreshold returns the lane_change_threshold value or the default.
func (c *TuningConfig) GetLaneChangeThreshold() float64 {
	if c.LaneChangeThreshold == nil {
		return 2.0
	}
	return *c.LaneChangeThreshold
}

// GetLaneChangeCooldownTicks returns the lane_change_cooldown_ticks value or the default.
func (c *TuningConfig) GetLaneChangeCooldownTicks() int64 {
	if c.LaneChangeCooldownTicks == nil {
		return 150
	}
	return *c.LaneChangeCooldownTicks
}

// GetOvertakeIntervalTicks returns the overtake_interval_ticks value or the default.
func (c *TuningConfig) GetOvertakeIntervalTicks() int64 {
	if c.OvertakeIntervalTicks == nil {
		return 10
	}
	return *c.OvertakeIntervalTicks
}

// GetOvertakeRadius returns the overtake_radius value or the default.
func (c *TuningConfig) GetOvertakeRadius() float64 {
	if c.OvertakeRadius == nil {
		return 30.0
	}
	return *c.OvertakeRadius
}

// GetOvertakeMaxScanned returns the overtake_max_scanned value or the default.
func (c *TuningConfig) GetOvertakeMaxScanned() int {
	if c.OvertakeMaxScanned == nil {
		return 10
	}
	return *c.OvertakeMaxScanned
}

// GetOvertakeMaxTracked returns the overtake_max_tracked value or the default.
func (c *TuningConfig) GetOvertakeMaxTracked() int {
	if c.OvertakeMaxTracked == nil {
		return 8
	}
	return *c.OvertakeMaxTracked
}

// GetOvertakeSideDistance returns the overtake_side_distance value or the default.
func (c *TuningConfig) GetOvertakeSideDistance() float64 {
	if c.OvertakeSideDistance == nil {
		return 4.0
	}
	return *c.OvertakeSideDistance
}

// GetOvertakeBehindDistance returns the overtake_behind_distance value or the default.
func (c *TuningConfig) GetOvertakeBehindDistance() float64 {
	if c.OvertakeBehindDistance == nil {
		return 4.0
	}
	return *c.OvertakeBehindDistance
}

// GetOvertakeSpeedMargin returns the overtake_speed_margin value or the default.
func (c *TuningConfig) GetOvertakeSpeedMargin() float64 {
	if c.OvertakeSpeedMargin == nil {
		return 1.5
	}
	return *c.OvertakeSpeedMargin
}

// GetOvertakeStaleTicks returns the overtake_stale_ticks value or the default.
func (c *TuningConfig) GetOvertakeStaleTicks() int64 {
	if c.OvertakeStaleTicks == nil {
		return 600
	}
	return *c.OvertakeStaleTicks
}

// GetOvertakeCooldownTicks returns the overtake_cooldown_ticks value or the default.
func (c *TuningConfig) GetOvertakeCooldownTicks() int64 {
	if c.OvertakeCooldownTicks == nil {
		return 100
	}
	return *c.OvertakeCooldownTicks
}

// GetFollowingIntervalTicks returns the following_interval_ticks value or the default.
func (c *TuningConfig) GetFollowingIntervalTicks() int64 {
	if c.FollowingIntervalTicks == nil {
		return 5
	}
	return *c.FollowingIntervalTicks
}

// GetFollowingClearDistance returns the following_clear_distance value or the default.
func (c *TuningConfig) GetFollowingClearDistance() float64 {
	if c.FollowingClearDistance == nil {
		return 40.0
	}
	return *c.FollowingClearDistance
}

// GetFollowingMinSpeed returns the following_min_speed value or the default.
func (c *TuningConfig) GetFollowingMinSpeed() float64 {
	if c.FollowingMinSpeed == nil {
		return 1.0
	}
	return *c.FollowingMinSpeed
}

// GetFollowingCooldownTicks returns the following_cooldown_ticks value or the default.
func (c *TuningConfig) GetFollowingCooldownTicks() int64 {
	if c.FollowingCooldownTicks == nil {
		return 100
	}
	return *c.FollowingCooldownTicks
}

// GetFollowingFloorSpeed returns the following_floor_speed value or the default.
func (c *TuningConfig) GetFollowingFloorSpeed() float64 {
	if c.FollowingFloorSpeed == nil {
		return 3.0
	}
	return *c.FollowingFloorSpeed
}

// GetMinSpeed returns the min_speed value or the default.
func (c *TuningConfig) GetMinSpeed() float64 {
	if c.MinSpeed == nil {
		return 1.0
	}
	return *c.MinSpeed
}

// GetMaxSpeed returns the max_speed value or the default.
func (c *TuningConfig) GetMaxSpeed() float64 {
	if c.MaxSpeed == nil {
		return 60.0
	}
	return *c.MaxSpeed
}

// GetSpeedEpsilon returns the speed_epsilon value or the default.
func (c *TuningConfig) GetSpeedEpsilon() float64 {
	if c.SpeedEpsilon == nil {
		return 0.001
	}
	return *c.SpeedEpsilon
}

// GetActuationThreshold returns the actuation_threshold value or the default.
func (c *TuningConfig) GetActuationThreshold() float64 {
	if c.ActuationThreshold == nil {
		return 0.1
	}
	return *c.ActuationThreshold
}

// GetCeilingHeadroom returns the ceiling_headroom value or the default.
func (c *TuningConfig) GetCeilingHeadroom() float64 {
	if c.CeilingHeadroom == nil {
		return 1.05
	}
	return *c.CeilingHeadroom
}

// GetMaxMultiplier returns the max_multiplier value or the default.
func (c *TuningConfig) GetMaxMultiplier() float64 {
	if c.MaxMultiplier == nil {
		return 10.0
	}
	return *c.MaxMultiplier
}

// GetNarrationUnits returns the narration_units value or the default.
func (c *TuningConfig) GetNarrationUnits() string {
	if c.NarrationUnits == nil {
		return "metric"
	}
	return *c.NarrationUnits
}
