package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/velocity.assist/internal/host"
	"github.com/banshee-data/velocity.assist/internal/timeutil"
)

type agentState struct {
	spec AgentSpec
	s    float64
}

// Host simulates the world around one ego vehicle. It implements
// host.TelemetrySource, host.RoadGraph, host.ProximityQuery,
// host.LeadDistanceSource, host.Actuator and host.AnnouncementSink.
type Host struct {
	scn  *Scenario
	road *Road
	tick timeutil.Tick

	egoS        float64
	egoSpeed    float64
	egoLateral  float64
	laneTarget  float64
	cruise      float64
	ceiling     float64
	hasCruise   bool
	hasCeiling  bool
	laneChanges map[int64]int

	agents []agentState

	// OnAnnounce, when set, sees every announcement as it is made.
	OnAnnounce    func(host.Announcement)
	Announcements []host.Announcement
}

// NewHost builds the road and places every vehicle.
func NewHost(scn *Scenario) (*Host, error) {
	road, err := NewRoad(scn.Road, scn.NodeSpacing, scn.JunctionRadius)
	if err != nil {
		return nil, err
	}
	h := &Host{
		scn:         scn,
		road:        road,
		egoS:        scn.Ego.Start,
		egoSpeed:    scn.Ego.Speed,
		egoLateral:  float64(scn.Ego.Lane) * scn.LaneWidth,
		laneChanges: make(map[int64]int, len(scn.LaneChanges)),
	}
	h.laneTarget = h.egoLateral
	for _, lc := range scn.LaneChanges {
		h.laneChanges[lc.Tick] = lc.Lane
	}
	for _, a := range scn.Agents {
		h.agents = append(h.agents, agentState{spec: a, s: a.Start})
	}
	return h, nil
}

// Road returns the simulated road.
func (h *Host) Road() *Road { return h.road }

// Tick returns the current tick.
func (h *Host) Tick() timeutil.Tick { return h.tick }

// Done reports whether the ego vehicle reached the end of the road or the
// scenario ran out of ticks.
func (h *Host) Done() bool {
	return h.egoS >= h.road.Length() || int(h.tick) >= h.scn.Ticks
}

// Telemetry reports the ego state.
func (h *Host) Telemetry() (host.Telemetry, error) {
	pos, heading := h.road.LanePose(h.egoS, h.egoLateral)
	return host.Telemetry{Position: pos, HeadingDeg: heading, Speed: h.egoSpeed, Exists: true}, nil
}

// NearestNode returns the closest road node within radius.
func (h *Host) NearestNode(point r3.Vec, radius float64) (host.RoadNodeSample, bool, error) {
	n, d := h.road.Nearest(point)
	if d > radius {
		return host.RoadNodeSample{}, false, nil
	}
	return n, true, nil
}

// NodeProperties returns the flags of the nearest node within one node
// spacing and the agent density (agents per 100 m) around it.
func (h *Host) NodeProperties(point r3.Vec) (float64, host.NodeFlags, error) {
	n, d := h.road.Nearest(point)
	if d > h.scn.NodeSpacing {
		return 0, 0, nil
	}
	var count int
	for _, a := range h.agents {
		p, _ := h.agentPose(a)
		if r3.Norm(r3.Sub(p, n.Position)) <= 50 {
			count++
		}
	}
	return float64(count), n.Flags, nil
}

// NearbyAgents lists agents within radius of center.
func (h *Host) NearbyAgents(center r3.Vec, radius float64) ([]host.Agent, error) {
	var out []host.Agent
	for _, a := range h.agents {
		p, _ := h.agentPose(a)
		if r3.Norm(r3.Sub(p, center)) <= radius {
			out = append(out, host.Agent{ID: a.spec.ID, Position: p, Speed: a.spec.Speed, SirenOn: a.spec.Siren})
		}
	}
	return out, nil
}

// LeadDistance returns the gap to the nearest agent ahead in the ego lane.
func (h *Host) LeadDistance() (float64, bool) {
	best := math.Inf(1)
	for _, a := range h.agents {
		if math.Abs(h.agentLateral(a)-h.egoLateral) >= h.scn.LaneWidth/2 {
			continue
		}
		if gap := a.s - h.egoS; gap > 0 && gap < best {
			best = gap
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}

// SirenWithin reports whether an agent with its siren on is within radius
// of the ego vehicle.
func (h *Host) SirenWithin(radius float64) bool {
	ego, _ := h.road.LanePose(h.egoS, h.egoLateral)
	for _, a := range h.agents {
		if !a.spec.Siren {
			continue
		}
		p, _ := h.agentPose(a)
		if r3.Norm(r3.Sub(p, ego)) <= radius {
			return true
		}
	}
	return false
}

// SetCruiseSpeed records the commanded cruise speed.
func (h *Host) SetCruiseSpeed(v float64) error {
	h.cruise, h.hasCruise = v, true
	return nil
}

// SetCruiseCeiling records the commanded ceiling.
func (h *Host) SetCruiseCeiling(v float64) error {
	h.ceiling, h.hasCeiling = v, true
	return nil
}

// Cruise returns the last commanded cruise speed.
func (h *Host) Cruise() (float64, bool) { return h.cruise, h.hasCruise }

// Announce records an announcement.
func (h *Host) Announce(a host.Announcement) error {
	h.Announcements = append(h.Announcements, a)
	if h.OnAnnounce != nil {
		h.OnAnnounce(a)
	}
	return nil
}

// Step advances the world by one tick. The ego vehicle follows the
// cruise command, bounded by the ceiling, under its kinematics limits.
func (h *Host) Step() {
	dt := h.scn.TickSeconds

	target := h.egoSpeed
	if h.hasCruise {
		target = h.cruise
	}
	if h.hasCeiling {
		target = math.Min(target, h.ceiling)
	}
	dist, v := h.scn.Kinematics.Step(h.egoSpeed, target, dt)
	h.egoS += dist
	h.egoSpeed = math.Max(0, v)

	if lane, ok := h.laneChanges[int64(h.tick)]; ok {
		h.laneTarget = float64(lane) * h.scn.LaneWidth
	}
	maxShift := h.scn.LateralSpeed * dt
	h.egoLateral += math.Max(-maxShift, math.Min(maxShift, h.laneTarget-h.egoLateral))

	for i := range h.agents {
		h.agents[i].s += h.agents[i].spec.Speed * dt
	}
	h.tick++
}

func (h *Host) agentLateral(a agentState) float64 {
	return float64(a.spec.Lane) * h.scn.LaneWidth
}

func (h *Host) agentPose(a agentState) (r3.Vec, float64) {
	return h.road.LanePose(a.s, h.agentLateral(a))
}
