package host

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/velocity.assist/internal/timeutil"
)

// Telemetry is one sample of ego vehicle state. It is sampled fresh each
// tick and never cached beyond it.
type Telemetry struct {
	Position   r3.Vec  // world metres; X east, Y north, Z up
	HeadingDeg float64 // navigation convention: 0 = north, clockwise
	Speed      float64 // m/s
	Exists     bool    // false when the host has no vehicle to report
}

// NodeFlags is the road-node property bit field.
type NodeFlags uint32

const (
	FlagJunction     NodeFlags = 128 // bit 7
	FlagTrafficLight NodeFlags = 256 // bit 8
)

// Has reports whether every bit in f2 is set.
func (f NodeFlags) Has(f2 NodeFlags) bool { return f&f2 == f2 }

// RoadNodeSample is one road-graph node returned by a query.
type RoadNodeSample struct {
	Position   r3.Vec
	HeadingDeg float64
	Density    float64
	Flags      NodeFlags
}

// IsJunction reports whether the node lies inside a junction.
func (n RoadNodeSample) IsJunction() bool { return n.Flags.Has(FlagJunction) }

// HasTrafficLight reports whether the node is controlled by a traffic light.
func (n RoadNodeSample) HasTrafficLight() bool { return n.Flags.Has(FlagTrafficLight) }

// Agent is a nearby dynamic road user returned by a proximity query.
// ID must be stable for the lifetime of the agent; the host may reissue
// object handles but not IDs.
type Agent struct {
	ID       int64
	Position r3.Vec
	Speed    float64
	SirenOn  bool
}

// Priority orders narration events for the announcement sink.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Announcement is a narration request. The sink owns de-duplication,
// queueing and delivery.
type Announcement struct {
	Text     string
	Priority Priority
	Tick     timeutil.Tick
	Category string
}

// DrivingStyle is the driving-style mode selected by the user.
type DrivingStyle int

const (
	StyleNormal DrivingStyle = iota
	StyleCautious
	StyleFast
	StyleReckless
)

func (s DrivingStyle) String() string {
	switch s {
	case StyleCautious:
		return "cautious"
	case StyleNormal:
		return "normal"
	case StyleFast:
		return "fast"
	case StyleReckless:
		return "reckless"
	default:
		return fmt.Sprintf("style(%d)", int(s))
	}
}

// ParseDrivingStyle maps a style name to its mode.
func ParseDrivingStyle(name string) (DrivingStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cautious":
		return StyleCautious, nil
	case "", "normal":
		return StyleNormal, nil
	case "fast":
		return StyleFast, nil
	case "reckless":
		return StyleReckless, nil
	default:
		return StyleNormal, fmt.Errorf("unknown driving style %q", name)
	}
}
