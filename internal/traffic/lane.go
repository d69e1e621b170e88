package traffic

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/velocity.assist/internal/host"
	"github.com/banshee-data/velocity.assist/internal/timeutil"
)

// CategoryLaneChange is the announcement category for lane changes.
const CategoryLaneChange = "lane_change"

const (
	laneClearFraction = 0.3 // of lane width; below this a change has settled
	anchorLerp        = 0.1 // per check while no change is in progress
)

// LaneChangeDetector tracks lateral drift relative to a slowly following
// anchor position.
type LaneChangeDetector struct {
	cfg      LaneConfig
	cooldown *timeutil.Cooldown

	synced     bool
	anchor     r3.Vec
	heading    float64
	inProgress bool
	lastOffset float64
}

// NewLaneChangeDetector returns a detector with no sync point.
func NewLaneChangeDetector(cfg LaneConfig) *LaneChangeDetector {
	return &LaneChangeDetector{cfg: cfg, cooldown: timeutil.NewCooldown()}
}

// InProgress reports whether a lane change is underway.
func (d *LaneChangeDetector) InProgress() bool { return d.inProgress }

// LateralOffset returns the offset measured by the last check.
func (d *LaneChangeDetector) LateralOffset() float64 { return d.lastOffset }

// Check compares t against the sync point. It returns an announcement when
// a new lane change is detected and the cooldown allows it. t must already
// be validated.
func (d *LaneChangeDetector) Check(t host.Telemetry, now timeutil.Tick) (host.Announcement, bool) {
	if !d.synced {
		d.resync(t)
		return host.Announcement{}, false
	}
	if t.Speed < d.cfg.MinSpeed || math.Abs(host.HeadingDelta(d.heading, t.HeadingDeg)) > d.cfg.HeadingToleranceDeg {
		d.resync(t)
		return host.Announcement{}, false
	}

	_, lateral := host.Offset(d.anchor, t.Position, t.HeadingDeg)
	d.lastOffset = lateral

	var out host.Announcement
	fired := false
	switch {
	case math.Abs(lateral) > d.cfg.ChangeThreshold:
		d.inProgress = true
		if d.cooldown.TryFire(CategoryLaneChange, now, d.cfg.CooldownTicks) {
			out = host.Announcement{Text: laneText(lateral), Priority: host.PriorityLow, Tick: now, Category: CategoryLaneChange}
			fired = true
		}
		d.anchor = t.Position
	case d.inProgress && math.Abs(lateral) < laneClearFraction*d.cfg.LaneWidth:
		d.inProgress = false
	}

	if !d.inProgress {
		d.anchor = r3.Add(d.anchor, r3.Scale(anchorLerp, r3.Sub(t.Position, d.anchor)))
	}
	d.heading = t.HeadingDeg
	return out, fired
}

func (d *LaneChangeDetector) resync(t host.Telemetry) {
	d.synced = true
	d.anchor = t.Position
	d.heading = t.HeadingDeg
}

// Reset forgets the sync point and any change in progress.
func (d *LaneChangeDetector) Reset() {
	d.synced = false
	d.anchor = r3.Vec{}
	d.heading = 0
	d.inProgress = false
	d.lastOffset = 0
	d.cooldown.Reset()
}

func laneText(lateral float64) string {
	if lateral > 0 {
		return "Changing lanes to the right"
	}
	return "Changing lanes to the left"
}
