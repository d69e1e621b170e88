package sim

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/velocity.assist/internal/host"
)

// Waypoint is one vertex of the road centreline.
type Waypoint struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Junction     bool    `json:"junction,omitempty"`
	TrafficLight bool    `json:"traffic_light,omitempty"`
}

// EgoSpec places the ego vehicle.
type EgoSpec struct {
	Start float64 `json:"start_m"` // arc length along the road
	Lane  int     `json:"lane"`    // lanes to the right of the centreline
	Speed float64 `json:"speed"`   // m/s
}

// AgentSpec places one other road user. Agents keep a constant speed and
// lane.
type AgentSpec struct {
	ID    int64   `json:"id"`
	Start float64 `json:"start_m"`
	Lane  int     `json:"lane"`
	Speed float64 `json:"speed"`
	Siren bool    `json:"siren,omitempty"`
}

// LaneChange moves the ego vehicle to Lane starting at Tick.
type LaneChange struct {
	Tick int64 `json:"tick"`
	Lane int   `json:"lane"`
}

// Multipliers are the arbiter multipliers a scenario starts with. Nil
// fields stay at 1.0.
type Multipliers struct {
	Style   *float64 `json:"style,omitempty"`
	Road    *float64 `json:"road,omitempty"`
	Weather *float64 `json:"weather,omitempty"`
	Time    *float64 `json:"time,omitempty"`
}

// Scenario is the JSON replay description.
type Scenario struct {
	Name            string       `json:"name"`
	Road            []Waypoint   `json:"road"`
	NodeSpacing     float64      `json:"node_spacing,omitempty"`    // metres, default 5
	JunctionRadius  float64      `json:"junction_radius,omitempty"` // metres of road flagged around a junction, default 10
	LaneWidth       float64      `json:"lane_width,omitempty"`      // metres, default 3.5
	LateralSpeed    float64      `json:"lateral_speed,omitempty"`   // m/s during lane changes, default 1
	TickSeconds     float64      `json:"tick_seconds,omitempty"`    // default 0.05
	Ticks           int          `json:"ticks"`                     // upper bound on ticks replayed
	Ego             EgoSpec      `json:"ego"`
	Kinematics      Kinematics   `json:"kinematics"`
	BaseSpeed       float64      `json:"base_speed"`
	Style           string       `json:"style,omitempty"`
	Autonomy        bool         `json:"autonomy"`
	Friction        float64      `json:"friction,omitempty"`
	Multipliers     Multipliers  `json:"multipliers"`
	ArrivalCap      *float64     `json:"arrival_cap,omitempty"`
	EmergencyRadius float64      `json:"emergency_radius,omitempty"` // siren agents this close engage the override; 0 disables
	Agents          []AgentSpec  `json:"agents,omitempty"`
	LaneChanges     []LaneChange `json:"lane_changes,omitempty"`
}

// Scenario defaults.
const (
	DefaultNodeSpacing    = 5.0
	DefaultJunctionRadius = 10.0
	DefaultLaneWidth      = 3.5
	DefaultLateralSpeed   = 1.0
	DefaultTickSeconds    = 0.05
)

// ErrInvalidScenario wraps every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// LoadScenario reads and validates a scenario file. Defaults are filled in.
func LoadScenario(path string) (*Scenario, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("scenario file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scenario file: %w", err)
	}
	const maxFileSize = 4 * 1024 * 1024 // 4MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("scenario file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes, defaults and validates scenario JSON.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario JSON: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) applyDefaults() {
	if s.NodeSpacing == 0 {
		s.NodeSpacing = DefaultNodeSpacing
	}
	if s.JunctionRadius == 0 {
		s.JunctionRadius = DefaultJunctionRadius
	}
	if s.LaneWidth == 0 {
		s.LaneWidth = DefaultLaneWidth
	}
	if s.LateralSpeed == 0 {
		s.LateralSpeed = DefaultLateralSpeed
	}
	if s.TickSeconds == 0 {
		s.TickSeconds = DefaultTickSeconds
	}
	if s.Style == "" {
		s.Style = host.StyleNormal.String()
	}
}

// DrivingStyle parses the scenario's style.
func (s *Scenario) DrivingStyle() (host.DrivingStyle, error) {
	return host.ParseDrivingStyle(s.Style)
}

// Validate checks ranges and references.
func (s *Scenario) Validate() error {
	if len(s.Road) < 2 {
		return fmt.Errorf("%w: road needs at least 2 waypoints, got %d", ErrInvalidScenario, len(s.Road))
	}
	for name, v := range map[string]float64{
		"node_spacing":    s.NodeSpacing,
		"lane_width":      s.LaneWidth,
		"lateral_speed":   s.LateralSpeed,
		"tick_seconds":    s.TickSeconds,
		"junction_radius": s.JunctionRadius,
	} {
		if !host.IsFinite(v) || v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidScenario, name, v)
		}
	}
	if s.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidScenario, s.Ticks)
	}
	if s.BaseSpeed < 0 || s.Ego.Speed < 0 || s.Ego.Start < 0 {
		return fmt.Errorf("%w: ego speeds and start must be non-negative", ErrInvalidScenario)
	}
	if s.EmergencyRadius < 0 {
		return fmt.Errorf("%w: emergency_radius must be non-negative", ErrInvalidScenario)
	}
	if err := s.Kinematics.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if _, err := s.DrivingStyle(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	ids := make(map[int64]bool, len(s.Agents))
	for _, a := range s.Agents {
		if ids[a.ID] {
			return fmt.Errorf("%w: duplicate agent id %d", ErrInvalidScenario, a.ID)
		}
		ids[a.ID] = true
		if a.Speed < 0 || a.Start < 0 {
			return fmt.Errorf("%w: agent %d speed and start must be non-negative", ErrInvalidScenario, a.ID)
		}
	}
	return nil
}
