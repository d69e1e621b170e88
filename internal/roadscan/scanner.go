package roadscan

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/velocity.assist/internal/arbiter"
	"github.com/banshee-data/velocity.assist/internal/curve"
	"github.com/banshee-data/velocity.assist/internal/host"
	"github.com/banshee-data/velocity.assist/internal/monitoring"
	"github.com/banshee-data/velocity.assist/internal/timeutil"
	"github.com/banshee-data/velocity.assist/internal/units"
)

var logf = monitoring.Component("roadscan")

// Announcement categories emitted by the scanner.
const (
	CategoryCurve        = "curve"
	CategoryTrafficLight = "traffic_light"
	CategoryJunction     = "junction"
	CategoryTurn         = "turn"
)

// Minimum ratio between current speed and curve safe speed before a
// slowdown is worth starting, and the bounds on the slowdown factor.
const (
	slowdownSpeedRatio = 0.9
	slowdownMinFactor  = 0.3
	slowdownMaxFactor  = 1.0
)

// SpeedCaps is the slice of the arbiter the scanner writes to.
// *arbiter.Arbiter satisfies it.
type SpeedCaps interface {
	SetCap(src arbiter.CapSource, speed float64)
	ClearCap(src arbiter.CapSource)
}

// Slowdown is an active curve slowdown window.
type Slowdown struct {
	Active      bool
	End         timeutil.Deadline
	PriorTarget float64 // target speed when the slowdown began
	Speed       float64 // published curve cap
}

// Crossing tracks a traversal of a junction at the vehicle's position.
type Crossing struct {
	Active        bool
	EntryHeading  float64
	EntryPosition r3.Vec
	EntryTick     timeutil.Tick
}

// Scanner owns all road-ahead state for a session.
type Scanner struct {
	cfg  Config
	road host.RoadGraph
	sink host.AnnouncementSink
	caps SpeedCaps

	friction float64
	cooldown *timeutil.Cooldown
	slowdown Slowdown
	crossing Crossing
}

// New returns a Scanner. caps may be nil, in which case slowdowns are
// tracked but not published.
func New(cfg Config, road host.RoadGraph, sink host.AnnouncementSink, caps SpeedCaps) *Scanner {
	return &Scanner{
		cfg:      cfg,
		road:     road,
		sink:     sink,
		caps:     caps,
		friction: cfg.Curve.DefaultFriction,
		cooldown: timeutil.NewCooldown(),
	}
}

// SetFriction sets the road friction coefficient used for safe speeds.
// Values that are not positive and finite restore the default.
func (s *Scanner) SetFriction(mu float64) {
	if !host.IsFinite(mu) || mu <= 0 {
		mu = s.cfg.Curve.DefaultFriction
	}
	s.friction = mu
}

// Friction returns the coefficient in use.
func (s *Scanner) Friction() float64 { return s.friction }

// Slowdown returns the current slowdown state.
func (s *Scanner) Slowdown() Slowdown { return s.slowdown }

// Crossing returns the current junction-crossing state.
func (s *Scanner) Crossing() Crossing { return s.crossing }

// Lookahead returns how far ahead the scanner samples at the given speed.
func (s *Scanner) Lookahead(speed float64) float64 {
	return clamp(speed*s.cfg.LookaheadSeconds, s.cfg.LookaheadMin, s.cfg.LookaheadMax)
}

// CurveCooldown returns the curve narration window in ticks. It shrinks
// with speed so faster vehicles hear about successive curves sooner.
func (s *Scanner) CurveCooldown(speed float64) int64 {
	ceiling := s.cfg.CurveCooldownTicks
	if !host.IsFinite(speed) || speed <= 0 {
		return ceiling
	}
	c := float64(ceiling) * s.cfg.CooldownReferenceSpeed / speed
	return int64(clamp(c, float64(s.cfg.CurveCooldownMinTicks), float64(ceiling)))
}

// SlowdownTriggerDistance returns how close a curve must be before a
// slowdown starts. Sharper curves trigger earlier.
func (s *Scanner) SlowdownTriggerDistance(speed float64, sev curve.Severity) float64 {
	base := math.Max(s.cfg.SlowdownBaseDistance, speed*s.cfg.SlowdownSpeedFactor)
	return clamp(base*severityMultiplier(sev), s.cfg.SlowdownMinDistance, s.cfg.SlowdownMaxDistance)
}

func severityMultiplier(sev curve.Severity) float64 {
	switch sev {
	case curve.Gentle:
		return 0.8
	case curve.Sharp:
		return 1.3
	case curve.Hairpin:
		return 1.6
	default:
		return 1.0
	}
}

// Update runs one scan. Slowdown expiry is checked first on every call;
// the rest is skipped for invalid telemetry or speeds below MinSpeed.
func (s *Scanner) Update(t host.Telemetry, now timeutil.Tick, targetSpeed float64, style host.DrivingStyle, autonomy bool) {
	s.CheckSlowdownExpired(now)

	t, err := host.Validate(t)
	if err != nil || t.Speed < s.cfg.MinSpeed {
		return
	}
	if s.road == nil {
		return
	}

	s.trackCrossing(t, now)
	s.scanAhead(t, now, targetSpeed, style, autonomy)
}

func (s *Scanner) scanAhead(t host.Telemetry, now timeutil.Tick, targetSpeed float64, style host.DrivingStyle, autonomy bool) {
	if s.cfg.SampleInterval <= 0 {
		return
	}
	lookahead := s.Lookahead(t.Speed)
	fwd := host.Forward(t.HeadingDeg)

	for d := s.cfg.SampleInterval; d <= lookahead; d += s.cfg.SampleInterval {
		point := r3.Add(t.Position, r3.Scale(d, fwd))
		node, found, err := s.road.NearestNode(point, s.cfg.SearchRadius)
		if err != nil {
			logf("nearest node query at %.0fm failed: %v", d, err)
			return
		}
		if !found {
			continue
		}

		info := s.cfg.Curve.Classify(t.HeadingDeg, node.HeadingDeg, d, t.Speed, s.friction, style)
		if info.Severity != curve.None {
			var slowedTo float64
			slowed := false
			if autonomy && !s.slowdown.Active && d <= s.SlowdownTriggerDistance(t.Speed, info.Severity) {
				slowedTo, slowed = s.StartSlowdown(info, t.Speed, targetSpeed, now)
			}
			if s.cooldown.TryFire(CategoryCurve, now, s.CurveCooldown(t.Speed)) {
				text := curveText(info, d, s.cfg.Units)
				if slowed {
					text += ", slowing to " + units.FormatSpeed(slowedTo, s.cfg.Units)
				}
				s.announce(text, curvePriority(info.Severity), now, CategoryCurve)
				return
			}
		}

		density, flags, err := s.road.NodeProperties(node.Position)
		if err != nil {
			logf("node properties query at %.0fm failed: %v", d, err)
			continue
		}
		node.Density, node.Flags = density, flags

		switch {
		case node.HasTrafficLight():
			if s.cooldown.TryFire(CategoryTrafficLight, now, s.cfg.TrafficLightCooldownTicks) {
				s.announce("Traffic light in "+units.FormatDistance(d, s.cfg.Units), host.PriorityMedium, now, CategoryTrafficLight)
				return
			}
		case node.IsJunction():
			if s.cooldown.TryFire(CategoryJunction, now, s.cfg.JunctionCooldownTicks) {
				s.announce("Intersection in "+units.FormatDistance(d, s.cfg.Units), host.PriorityLow, now, CategoryJunction)
				return
			}
		}
	}
}

// StartSlowdown begins a curve slowdown if the curve's safe speed is
// meaningfully below currentSpeed. The published cap is targetSpeed scaled
// by safe/target, bounded to [0.3, 1.0] of target. It reports false when no
// slowdown was started.
func (s *Scanner) StartSlowdown(info curve.Info, currentSpeed, targetSpeed float64, now timeutil.Tick) (float64, bool) {
	if s.slowdown.Active {
		return 0, false
	}
	if !host.IsFinite(targetSpeed) || targetSpeed <= 0 || !host.IsFinite(info.SafeSpeed) {
		return 0, false
	}
	if info.SafeSpeed >= slowdownSpeedRatio*currentSpeed {
		return 0, false
	}
	factor := clamp(info.SafeSpeed/targetSpeed, slowdownMinFactor, slowdownMaxFactor)
	speed := targetSpeed * factor

	s.slowdown = Slowdown{
		Active:      true,
		End:         timeutil.NewDeadline(now, s.cfg.SlowdownDurationTicks),
		PriorTarget: targetSpeed,
		Speed:       speed,
	}
	if s.caps != nil {
		s.caps.SetCap(arbiter.CapCurve, speed)
	}
	logf("%s %s curve: slowing to %.1f m/s until tick %d", info.Severity, info.Direction, speed, s.slowdown.End.At())
	return speed, true
}

// CheckSlowdownExpired ends an active slowdown once now is strictly past
// its end tick, clearing the curve cap. It reports whether it ended one.
func (s *Scanner) CheckSlowdownExpired(now timeutil.Tick) bool {
	if !s.slowdown.Active || !s.slowdown.End.Expired(now) {
		return false
	}
	s.endSlowdown()
	return true
}

func (s *Scanner) endSlowdown() {
	s.slowdown = Slowdown{}
	if s.caps != nil {
		s.caps.ClearCap(arbiter.CapCurve)
	}
}

func (s *Scanner) trackCrossing(t host.Telemetry, now timeutil.Tick) {
	_, flags, err := s.road.NodeProperties(t.Position)
	if err != nil {
		logf("node properties query at vehicle failed: %v", err)
		return
	}
	inJunction := flags.Has(host.FlagJunction)

	switch {
	case inJunction && !s.crossing.Active:
		s.crossing = Crossing{
			Active:        true,
			EntryHeading:  t.HeadingDeg,
			EntryPosition: t.Position,
			EntryTick:     now,
		}
	case !inJunction && s.crossing.Active:
		turn := ClassifyTurn(host.HeadingDelta(s.crossing.EntryHeading, t.HeadingDeg))
		s.crossing = Crossing{}
		s.announce(turn.Phrase(), host.PriorityLow, now, CategoryTurn)
	}
}

// Reset drops slowdown, crossing and cooldown state. An active slowdown
// clears its cap. Friction is a collaborator input and is kept.
func (s *Scanner) Reset() {
	if s.slowdown.Active {
		s.endSlowdown()
	}
	s.crossing = Crossing{}
	s.cooldown.Reset()
}

func (s *Scanner) announce(text string, p host.Priority, now timeutil.Tick, category string) {
	if s.sink == nil {
		return
	}
	a := host.Announcement{Text: text, Priority: p, Tick: now, Category: category}
	if err := s.sink.Announce(a); err != nil {
		logf("announce %q failed: %v", text, err)
	}
}

func curveText(info curve.Info, distance float64, system string) string {
	return fmt.Sprintf("%s %s curve in %s",
		capitalize(info.Severity.String()), info.Direction, units.FormatDistance(distance, system))
}

func curvePriority(sev curve.Severity) host.Priority {
	switch sev {
	case curve.Moderate:
		return host.PriorityMedium
	case curve.Sharp:
		return host.PriorityHigh
	case curve.Hairpin:
		return host.PriorityCritical
	default:
		return host.PriorityLow
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
