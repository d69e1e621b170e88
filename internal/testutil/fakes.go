package testutil

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/velocity.assist/internal/host"
)

// RecordingActuator records every cruise command. When Err is set every
// call fails and nothing is recorded.
type RecordingActuator struct {
	Speeds   []float64
	Ceilings []float64
	Err      error
}

func (a *RecordingActuator) SetCruiseSpeed(v float64) error {
	if a.Err != nil {
		return a.Err
	}
	a.Speeds = append(a.Speeds, v)
	return nil
}

func (a *RecordingActuator) SetCruiseCeiling(v float64) error {
	if a.Err != nil {
		return a.Err
	}
	a.Ceilings = append(a.Ceilings, v)
	return nil
}

// Calls returns the number of cruise speed commands received.
func (a *RecordingActuator) Calls() int { return len(a.Speeds) }

// Last returns the most recent cruise speed, or NaN if none was sent.
func (a *RecordingActuator) Last() float64 {
	if len(a.Speeds) == 0 {
		return math.NaN()
	}
	return a.Speeds[len(a.Speeds)-1]
}

// RecordingSink records announcements.
type RecordingSink struct {
	Announcements []host.Announcement
	Err           error
}

func (s *RecordingSink) Announce(a host.Announcement) error {
	if s.Err != nil {
		return s.Err
	}
	s.Announcements = append(s.Announcements, a)
	return nil
}

// Texts returns the text of every recorded announcement.
func (s *RecordingSink) Texts() []string {
	out := make([]string, len(s.Announcements))
	for i, a := range s.Announcements {
		out[i] = a.Text
	}
	return out
}

// ByCategory returns recorded announcements in one category.
func (s *RecordingSink) ByCategory(category string) []host.Announcement {
	var out []host.Announcement
	for _, a := range s.Announcements {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// Reset forgets recorded announcements.
func (s *RecordingSink) Reset() { s.Announcements = nil }

// StaticTelemetry returns T (or Err) on every poll.
type StaticTelemetry struct {
	T   host.Telemetry
	Err error
}

func (s *StaticTelemetry) Telemetry() (host.Telemetry, error) {
	if s.Err != nil {
		return host.Telemetry{}, s.Err
	}
	return s.T, nil
}

// Telemetry builds a valid telemetry sample.
func Telemetry(x, y, headingDeg, speed float64) host.Telemetry {
	return host.Telemetry{Position: r3.Vec{X: x, Y: y}, HeadingDeg: headingDeg, Speed: speed, Exists: true}
}

// ScriptedRoad is a road graph made of explicit nodes.
type ScriptedRoad struct {
	Nodes []host.RoadNodeSample

	// FlagRadius bounds NodeProperties lookups; zero means 5 m.
	FlagRadius float64

	NearestErr error
	PropsErr   error

	NearestCalls int
}

// NearestNode returns the closest scripted node within radius.
func (r *ScriptedRoad) NearestNode(point r3.Vec, radius float64) (host.RoadNodeSample, bool, error) {
	r.NearestCalls++
	if r.NearestErr != nil {
		return host.RoadNodeSample{}, false, r.NearestErr
	}
	n, d, ok := r.closest(point)
	if !ok || d > radius {
		return host.RoadNodeSample{}, false, nil
	}
	return n, true, nil
}

// NodeProperties returns the density and flags of the closest node within
// FlagRadius, or zero values when none is that close.
func (r *ScriptedRoad) NodeProperties(point r3.Vec) (float64, host.NodeFlags, error) {
	if r.PropsErr != nil {
		return 0, 0, r.PropsErr
	}
	radius := r.FlagRadius
	if radius == 0 {
		radius = 5
	}
	n, d, ok := r.closest(point)
	if !ok || d > radius {
		return 0, 0, nil
	}
	return n.Density, n.Flags, nil
}

func (r *ScriptedRoad) closest(point r3.Vec) (host.RoadNodeSample, float64, bool) {
	best := math.Inf(1)
	var out host.RoadNodeSample
	for _, n := range r.Nodes {
		d := r3.Norm(r3.Sub(n.Position, point))
		if d < best {
			best = d
			out = n
		}
	}
	return out, best, !math.IsInf(best, 1)
}

// StraightRoad lays nodes every spacing metres from origin along heading,
// all with the same heading, out to length metres.
func StraightRoad(origin r3.Vec, headingDeg, spacing, length float64) *ScriptedRoad {
	r := &ScriptedRoad{}
	dir := host.Forward(headingDeg)
	for s := 0.0; s <= length; s += spacing {
		r.Nodes = append(r.Nodes, host.RoadNodeSample{
			Position:   r3.Add(origin, r3.Scale(s, dir)),
			HeadingDeg: headingDeg,
		})
	}
	return r
}

// SetHeadingFrom changes the heading of every node at least from metres
// from origin along the original heading.
func (r *ScriptedRoad) SetHeadingFrom(origin r3.Vec, headingDeg, from, newHeading float64) {
	for i, n := range r.Nodes {
		fwd, _ := host.Offset(origin, n.Position, headingDeg)
		if fwd >= from {
			r.Nodes[i].HeadingDeg = newHeading
		}
	}
}

// SetFlagsBetween sets flags on nodes whose distance from origin along
// heading lies in [from, to].
func (r *ScriptedRoad) SetFlagsBetween(origin r3.Vec, headingDeg, from, to float64, flags host.NodeFlags) {
	for i, n := range r.Nodes {
		fwd, _ := host.Offset(origin, n.Position, headingDeg)
		if fwd >= from && fwd <= to {
			r.Nodes[i].Flags |= flags
		}
	}
}

// Proximity returns Agents within the query radius, or Err.
type Proximity struct {
	Agents []host.Agent
	Err    error
}

func (p *Proximity) NearbyAgents(center r3.Vec, radius float64) ([]host.Agent, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	var out []host.Agent
	for _, a := range p.Agents {
		if r3.Norm(r3.Sub(a.Position, center)) <= radius {
			out = append(out, a)
		}
	}
	return out, nil
}

// LeadDistance is a fixed lead-vehicle distance source.
type LeadDistance struct {
	Distance float64
	OK       bool
}

func (l *LeadDistance) LeadDistance() (float64, bool) { return l.Distance, l.OK }
