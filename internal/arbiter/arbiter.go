// Package arbiter owns the single vehicle speed command.
//
// Every independent speed influence (driving style, road type, weather,
// time of day, arrival distance, curve slowdown, following distance) is
// pushed into the Arbiter as a multiplier or a cap. Once per tick, after all
// influences are pushed, Apply folds them into one speed and actuates it
// only when it changed meaningfully. No other component writes the cruise
// speed.
package arbiter

import (
	"fmt"
	"math"

	"github.com/banshee-data/velocity.assist/internal/config"
	"github.com/banshee-data/velocity.assist/internal/host"
	"github.com/banshee-data/velocity.assist/internal/monitoring"
)

var logf = monitoring.Component("arbiter")

// Multiplier names one dimensionless speed influence.
type Multiplier int

const (
	MultStyle Multiplier = iota
	MultRoad
	MultWeather
	MultTime
	numMultipliers
)

func (m Multiplier) String() string {
	switch m {
	case MultStyle:
		return "style"
	case MultRoad:
		return "road"
	case MultWeather:
		return "weather"
	case MultTime:
		return "time"
	default:
		return fmt.Sprintf("multiplier(%d)", int(m))
	}
}

// CapSource names one upper bound on the commanded speed.
type CapSource int

const (
	CapArrival CapSource = iota
	CapCurve
	CapFollowing
	numCaps
)

func (c CapSource) String() string {
	switch c {
	case CapArrival:
		return "arrival"
	case CapCurve:
		return "curve"
	case CapFollowing:
		return "following"
	default:
		return fmt.Sprintf("cap(%d)", int(c))
	}
}

// Config holds arbiter limits.
type Config struct {
	MinSpeed           float64 // m/s
	MaxSpeed           float64 // m/s
	Epsilon            float64 // setter change threshold
	ActuationThreshold float64 // m/s change that forces re-actuation
	CeilingHeadroom    float64 // ceiling = effective * headroom, capped at MaxSpeed
	MaxMultiplier      float64
}

// DefaultConfig returns the built-in limits.
func DefaultConfig() Config {
	return ConfigFromTuning(config.EmptyTuningConfig())
}

// ConfigFromTuning builds a Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		MinSpeed:           cfg.GetMinSpeed(),
		MaxSpeed:           cfg.GetMaxSpeed(),
		Epsilon:            cfg.GetSpeedEpsilon(),
		ActuationThreshold: cfg.GetActuationThreshold(),
		CeilingHeadroom:    cfg.GetCeilingHeadroom(),
		MaxMultiplier:      cfg.GetMaxMultiplier(),
	}
}

// Decision is the outcome of one Apply call.
type Decision struct {
	Effective float64
	Ceiling   float64
	Actuated  bool
}

// Arbiter composes speed influences into one command.
// It is not safe for concurrent use; the host drives it from its tick loop.
type Arbiter struct {
	cfg Config

	base        float64
	multipliers [numMultipliers]float64
	caps        [numCaps]float64

	dirty     bool
	suspended bool
	hasSent   bool
	lastSent  float64
}

// New returns an Arbiter with every multiplier at 1.0 and every cap unbounded.
// The first Apply always actuates.
func New(cfg Config) *Arbiter {
	a := &Arbiter{cfg: cfg}
	a.Reset()
	return a
}

// Config returns the arbiter limits.
func (a *Arbiter) Config() Config { return a.cfg }

// BaseSpeed returns the user-set cruise target.
func (a *Arbiter) BaseSpeed() float64 { return a.base }

// SetBaseSpeed sets the user cruise target. Non-finite or negative values
// are rejected.
func (a *Arbiter) SetBaseSpeed(v float64) {
	if !host.IsFinite(v) || v < 0 {
		logf("rejected base speed %v", v)
		return
	}
	a.update(&a.base, v)
}

// SetStyleMultiplier sets the driving-style multiplier.
func (a *Arbiter) SetStyleMultiplier(v float64) { a.SetMultiplier(MultStyle, v) }

// SetRoadMultiplier sets the road-type multiplier.
func (a *Arbiter) SetRoadMultiplier(v float64) { a.SetMultiplier(MultRoad, v) }

// SetWeatherMultiplier sets the weather multiplier.
func (a *Arbiter) SetWeatherMultiplier(v float64) { a.SetMultiplier(MultWeather, v) }

// SetTimeMultiplier sets the time-of-day multiplier.
func (a *Arbiter) SetTimeMultiplier(v float64) { a.SetMultiplier(MultTime, v) }

// SetMultiplier sets one multiplier, clamped into [0, MaxMultiplier].
// NaN is rejected.
func (a *Arbiter) SetMultiplier(m Multiplier, v float64) {
	if m < 0 || m >= numMultipliers {
		return
	}
	if math.IsNaN(v) {
		logf("rejected NaN %s multiplier", m)
		return
	}
	v = math.Max(0, math.Min(v, a.cfg.MaxMultiplier))
	a.update(&a.multipliers[m], v)
}

// MultiplierValue returns the stored value of one multiplier.
func (a *Arbiter) MultiplierValue(m Multiplier) float64 {
	if m < 0 || m >= numMultipliers {
		return 1
	}
	return a.multipliers[m]
}

// SetArrivalCap sets the ceiling imposed when approaching a destination.
func (a *Arbiter) SetArrivalCap(v float64) { a.SetCap(CapArrival, v) }

// ClearArrivalCap removes the arrival ceiling.
func (a *Arbiter) ClearArrivalCap() { a.ClearCap(CapArrival) }

// SetCap sets one upper bound. Negative values clamp to zero, +Inf means
// unbounded and NaN is rejected.
func (a *Arbiter) SetCap(c CapSource, v float64) {
	if c < 0 || c >= numCaps {
		return
	}
	if math.IsNaN(v) {
		logf("rejected NaN %s cap", c)
		return
	}
	a.update(&a.caps[c], math.Max(0, v))
}

// ClearCap returns one cap to unbounded.
func (a *Arbiter) ClearCap(c CapSource) { a.SetCap(c, math.Inf(1)) }

// CapValue returns one cap; +Inf when unbounded.
func (a *Arbiter) CapValue(c CapSource) float64 {
	if c < 0 || c >= numCaps {
		return math.Inf(1)
	}
	return a.caps[c]
}

// update stores v in *field and marks the state dirty only on a real change.
func (a *Arbiter) update(field *float64, v float64) {
	cur := *field
	if math.IsInf(cur, 1) && math.IsInf(v, 1) {
		return
	}
	if !math.IsInf(cur, 1) && !math.IsInf(v, 1) && math.Abs(cur-v) <= a.cfg.Epsilon {
		return
	}
	*field = v
	a.dirty = true
}

// Dirty reports whether a setter changed state since the last actuation.
func (a *Arbiter) Dirty() bool { return a.dirty }

// ComputeEffectiveSpeed returns
// clamp(min(base * style * road * weather * time, caps...), MinSpeed, MaxSpeed).
// It has no side effects.
func (a *Arbiter) ComputeEffectiveSpeed() float64 {
	return a.compute(-1)
}

// ComputeEffectiveSpeedWithout is ComputeEffectiveSpeed ignoring one cap.
// Components use it to ask what the speed would be without their own cap.
func (a *Arbiter) ComputeEffectiveSpeedWithout(c CapSource) float64 {
	return a.compute(c)
}

func (a *Arbiter) compute(skip CapSource) float64 {
	v := a.base
	for _, m := range a.multipliers {
		v *= m
	}
	for c, limit := range a.caps {
		if CapSource(c) == skip {
			continue
		}
		v = math.Min(v, limit)
	}
	if math.IsNaN(v) {
		v = a.cfg.MinSpeed
	}
	return math.Max(a.cfg.MinSpeed, math.Min(v, a.cfg.MaxSpeed))
}

// Apply recomputes the effective speed and actuates it when state is dirty
// or it moved more than ActuationThreshold from the last command. On
// actuator failure nothing is recorded, so the next tick retries.
func (a *Arbiter) Apply(act host.Actuator) (Decision, error) {
	eff := a.ComputeEffectiveSpeed()
	d := Decision{Effective: eff, Ceiling: a.ceiling(eff)}

	if a.suspended {
		return d, nil
	}
	if !a.dirty && a.hasSent && math.Abs(eff-a.lastSent) <= a.cfg.ActuationThreshold {
		return d, nil
	}

	if err := act.SetCruiseSpeed(eff); err != nil {
		logf("set cruise speed %.2f failed: %v", eff, err)
		return d, fmt.Errorf("set cruise speed: %w", err)
	}
	if err := act.SetCruiseCeiling(d.Ceiling); err != nil {
		logf("set cruise ceiling %.2f failed: %v", d.Ceiling, err)
		return d, fmt.Errorf("set cruise ceiling: %w", err)
	}

	a.lastSent = eff
	a.hasSent = true
	a.dirty = false
	d.Actuated = true
	return d, nil
}

func (a *Arbiter) ceiling(eff float64) float64 {
	return math.Min(eff*a.cfg.CeilingHeadroom, a.cfg.MaxSpeed)
}

// LastSent returns the last actuated speed and whether anything was sent.
func (a *Arbiter) LastSent() (float64, bool) { return a.lastSent, a.hasSent }

// Suspend stops Apply from actuating while an external override (such as
// emergency-vehicle yielding) owns the vehicle.
func (a *Arbiter) Suspend() { a.suspended = true }

// Resume ends a suspension and forces the next Apply to actuate.
func (a *Arbiter) Resume() {
	if !a.suspended {
		return
	}
	a.suspended = false
	a.dirty = true
}

// Suspended reports whether arbitration is suspended.
func (a *Arbiter) Suspended() bool { return a.suspended }

// Reset returns every multiplier to 1.0 and every cap to unbounded and
// forces the next Apply to actuate. The base speed is kept.
func (a *Arbiter) Reset() {
	for i := range a.multipliers {
		a.multipliers[i] = 1
	}
	for i := range a.caps {
		a.caps[i] = math.Inf(1)
	}
	a.dirty = true
	a.hasSent = false
}
