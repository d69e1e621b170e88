// Package curve classifies upcoming road curvature and computes a physically
// safe traversal speed. It holds no state.
package curve

import (
	"math"

	"github.com/banshee-data/velocity.assist/internal/config"
	"github.com/banshee-data/velocity.assist/internal/host"
)

// Severity buckets curve sharpness. It drives both narration wording and
// slowdown aggressiveness.
type Severity int

const (
	None Severity = iota
	Gentle
	Moderate
	Sharp
	Hairpin
)

func (s Severity) String() string {
	switch s {
	case Gentle:
		return "gentle"
	case Moderate:
		return "moderate"
	case Sharp:
		return "sharp"
	case Hairpin:
		return "hairpin"
	default:
		return "none"
	}
}

// Direction is the side the road bends toward.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// Fixed severity boundaries in degrees of heading change. The None boundary
// is tunable and lives on Model.
const (
	GentleMaxDeg   = 25.0
	ModerateMaxDeg = 45.0
	SharpMaxDeg    = 90.0
)

const (
	Gravity                 = 9.81 // m/s²
	DefaultFriction         = 0.8
	DefaultNoneThresholdDeg = 8.0
	DefaultMinSafeSpeed     = 2.0 // m/s
	MaxSpeedRatio           = 1.2 // safe speed never exceeds current speed by more than 20%
)

// Info describes one detected curve. It is an immutable value produced and
// consumed within a single tick.
type Info struct {
	Severity  Severity
	Direction Direction
	AngleDeg  float64 // absolute heading change, >= 0
	RadiusM   float64 // estimated radius
	SafeSpeed float64 // m/s
}

// Model carries the tunable parts of curve classification.
type Model struct {
	NoneThresholdDeg float64
	MinSafeSpeed     float64
	DefaultFriction  float64
}

// DefaultModel returns the built-in thresholds.
func DefaultModel() Model {
	return Model{
		NoneThresholdDeg: DefaultNoneThresholdDeg,
		MinSafeSpeed:     DefaultMinSafeSpeed,
		DefaultFriction:  DefaultFriction,
	}
}

// ModelFromTuning builds a Model from a loaded TuningConfig.
func ModelFromTuning(cfg *config.TuningConfig) Model {
	return Model{
		NoneThresholdDeg: cfg.GetCurveNoneThresholdDeg(),
		MinSafeSpeed:     cfg.GetCurveMinSafeSpeed(),
		DefaultFriction:  cfg.GetDefaultFriction(),
	}
}

// Classify uses DefaultModel. See Model.Classify.
func Classify(vehicleHeading, roadHeading, distance, currentSpeed, friction float64, style host.DrivingStyle) Info {
	return DefaultModel().Classify(vehicleHeading, roadHeading, distance, currentSpeed, friction, style)
}

// Classify compares the vehicle heading with the road heading distance
// metres ahead. Non-finite input, negative speed or a non-positive distance
// yield severity None with SafeSpeed equal to currentSpeed. A friction that
// is not a positive finite number falls back to the model default.
func (m Model) Classify(vehicleHeading, roadHeading, distance, currentSpeed, friction float64, style host.DrivingStyle) Info {
	neutral := Info{Severity: None, SafeSpeed: currentSpeed}
	if !host.IsFinite(vehicleHeading) || !host.IsFinite(roadHeading) ||
		!host.IsFinite(distance) || !host.IsFinite(currentSpeed) {
		return neutral
	}
	if distance <= 0 || currentSpeed < 0 {
		return neutral
	}
	if !host.IsFinite(friction) || friction <= 0 {
		friction = m.DefaultFriction
	}

	delta := host.HeadingDelta(vehicleHeading, roadHeading)
	angle := math.Abs(delta)

	dir := Left
	if delta > 0 {
		dir = Right
	}

	radius := Radius(distance, angle)
	speed := SafeSpeed(radius, friction) * StyleModifier(style)
	speed = math.Max(m.MinSafeSpeed, math.Min(speed, currentSpeed*MaxSpeedRatio))

	return Info{
		Severity:  m.SeverityFor(angle),
		Direction: dir,
		AngleDeg:  angle,
		RadiusM:   radius,
		SafeSpeed: speed,
	}
}

// SeverityFor buckets an absolute heading change.
func (m Model) SeverityFor(angleDeg float64) Severity {
	switch {
	case angleDeg < m.NoneThresholdDeg:
		return None
	case angleDeg < GentleMaxDeg:
		return Gentle
	case angleDeg < ModerateMaxDeg:
		return Moderate
	case angleDeg < SharpMaxDeg:
		return Sharp
	default:
		return Hairpin
	}
}

// Radius estimates the curve radius from tangent geometry using the half
// angle of the heading change. A zero angle gives an infinite radius.
func Radius(distance, angleDeg float64) float64 {
	t := math.Tan(angleDeg * math.Pi / 360)
	if t <= 0 {
		return math.Inf(1)
	}
	return distance / t
}

// SafeSpeed is the circular-motion limit sqrt(mu * g * r).
func SafeSpeed(radius, friction float64) float64 {
	return math.Sqrt(friction * Gravity * radius)
}

// StyleModifier scales the physical limit by driving style.
func StyleModifier(style host.DrivingStyle) float64 {
	switch style {
	case host.StyleCautious:
		return 0.8
	case host.StyleFast:
		return 1.0
	case host.StyleReckless:
		return 1.1
	default:
		return 0.9
	}
}
