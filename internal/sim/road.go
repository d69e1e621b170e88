package sim

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/velocity.assist/internal/host"
)

// Road is a densified polyline. Nodes carry the heading of the segment they
// lie on, so a bend shows up as a heading step between adjacent nodes. A
// node sitting exactly on a waypoint takes the outgoing heading.
type Road struct {
	points  []r3.Vec
	cum     []float64 // arc length at each waypoint
	nodes   []host.RoadNodeSample
	nodeS   []float64 // arc length of each node
	spacing float64
}

// NewRoad lays nodes every spacing metres along the waypoints. Nodes within
// junctionRadius of arc length from a flagged waypoint inherit its flags.
func NewRoad(wps []Waypoint, spacing, junctionRadius float64) (*Road, error) {
	if len(wps) < 2 {
		return nil, fmt.Errorf("road needs at least 2 waypoints, got %d", len(wps))
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("node spacing must be positive, got %v", spacing)
	}

	r := &Road{spacing: spacing}
	r.points = make([]r3.Vec, len(wps))
	r.cum = make([]float64, len(wps))
	for i, w := range wps {
		r.points[i] = r3.Vec{X: w.X, Y: w.Y}
		if i > 0 {
			seg := r3.Norm(r3.Sub(r.points[i], r.points[i-1]))
			if seg == 0 {
				return nil, fmt.Errorf("waypoints %d and %d coincide", i-1, i)
			}
			r.cum[i] = r.cum[i-1] + seg
		}
	}

	for s := 0.0; s <= r.Length(); s += spacing {
		pos, heading := r.Pose(s)
		r.nodes = append(r.nodes, host.RoadNodeSample{Position: pos, HeadingDeg: heading})
		r.nodeS = append(r.nodeS, s)
	}

	for i, w := range wps {
		var flags host.NodeFlags
		if w.Junction {
			flags |= host.FlagJunction
		}
		if w.TrafficLight {
			flags |= host.FlagTrafficLight
		}
		if flags == 0 {
			continue
		}
		for j, s := range r.nodeS {
			if math.Abs(s-r.cum[i]) <= junctionRadius {
				r.nodes[j].Flags |= flags
			}
		}
	}
	return r, nil
}

// Length returns the total arc length in metres.
func (r *Road) Length() float64 { return r.cum[len(r.cum)-1] }

// Nodes returns the densified nodes.
func (r *Road) Nodes() []host.RoadNodeSample { return r.nodes }

// Pose returns the centreline position and heading at arc length s,
// clamped to the road ends.
func (r *Road) Pose(s float64) (r3.Vec, float64) {
	s = math.Max(0, math.Min(s, r.Length()))
	i := sort.SearchFloat64s(r.cum, s)
	if i < len(r.cum)-1 && r.cum[i] == s {
		// A waypoint belongs to the segment leaving it.
		i++
	}
	if i == 0 {
		i = 1
	}
	if i >= len(r.cum) {
		i = len(r.cum) - 1
	}
	a, b := r.points[i-1], r.points[i]
	seg := r.cum[i] - r.cum[i-1]
	t := (s - r.cum[i-1]) / seg
	pos := r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
	return pos, segmentHeading(a, b)
}

// LanePose offsets the centreline pose laterally, positive to the right.
func (r *Road) LanePose(s, lateral float64) (r3.Vec, float64) {
	pos, heading := r.Pose(s)
	return r3.Add(pos, r3.Scale(lateral, host.Right(heading))), heading
}

// Nearest returns the closest node to point and its distance.
func (r *Road) Nearest(point r3.Vec) (host.RoadNodeSample, float64) {
	best := math.Inf(1)
	var out host.RoadNodeSample
	for _, n := range r.nodes {
		d := r3.Norm(r3.Sub(n.Position, point))
		if d < best {
			best, out = d, n
		}
	}
	return out, best
}

// segmentHeading is the navigation heading from a to b.
func segmentHeading(a, b r3.Vec) float64 {
	return host.NormalizeHeading(math.Atan2(b.X-a.X, b.Y-a.Y) * 180 / math.Pi)
}
