package host

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrVehicleMissing is returned when the host reports no vehicle.
	ErrVehicleMissing = errors.New("vehicle does not exist")
	// ErrNonFinite is returned when a telemetry field is NaN or infinite.
	ErrNonFinite = errors.New("telemetry contains non-finite value")
	// ErrOutOfRange is returned when a telemetry field is finite but impossible.
	ErrOutOfRange = errors.New("telemetry value out of range")
)

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsFiniteVec reports whether every component of v is finite.
func IsFiniteVec(v r3.Vec) bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// Validate checks a telemetry sample and returns it with the heading
// normalized into [0, 360). It is the only place the engine inspects raw
// telemetry for NaN or infinity.
func Validate(t Telemetry) (Telemetry, error) {
	if !t.Exists {
		return Telemetry{}, ErrVehicleMissing
	}
	if !IsFiniteVec(t.Position) {
		return Telemetry{}, fmt.Errorf("position %v: %w", t.Position, ErrNonFinite)
	}
	if !IsFinite(t.HeadingDeg) {
		return Telemetry{}, fmt.Errorf("heading %v: %w", t.HeadingDeg, ErrNonFinite)
	}
	if !IsFinite(t.Speed) {
		return Telemetry{}, fmt.Errorf("speed %v: %w", t.Speed, ErrNonFinite)
	}
	if t.Speed < 0 {
		return Telemetry{}, fmt.Errorf("speed %.3f: %w", t.Speed, ErrOutOfRange)
	}
	t.HeadingDeg = NormalizeHeading(t.HeadingDeg)
	return t, nil
}

// NormalizeHeading wraps a heading into [0, 360).
func NormalizeHeading(deg float64) float64 {
	h := math.Mod(deg, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HeadingDelta returns to-from wrapped into (-180, 180]. Positive values
// are clockwise turns (to the right).
func HeadingDelta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}

// Forward returns the unit vector along a navigation heading in the XY plane.
func Forward(headingDeg float64) r3.Vec {
	rad := headingDeg * math.Pi / 180
	return r3.Vec{X: math.Sin(rad), Y: math.Cos(rad)}
}

// Right returns the unit vector perpendicular to the heading, pointing to
// the driver's right.
func Right(headingDeg float64) r3.Vec {
	rad := headingDeg * math.Pi / 180
	return r3.Vec{X: math.Cos(rad), Y: -math.Sin(rad)}
}

// Offset decomposes the XY displacement from origin to p into forward and
// lateral (positive right) components relative to a heading.
func Offset(origin, p r3.Vec, headingDeg float64) (forward, lateral float64) {
	d := r3.Sub(p, origin)
	d.Z = 0
	return r3.Dot(d, Forward(headingDeg)), r3.Dot(d, Right(headingDeg))
}
