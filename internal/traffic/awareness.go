package traffic

import (
	"github.com/banshee-data/velocity.assist/internal/host"
	"github.com/banshee-data/velocity.assist/internal/monitoring"
	"github.com/banshee-data/velocity.assist/internal/timeutil"
)

var logf = monitoring.Component("traffic")

// Awareness runs the three detectors on their own throttles.
type Awareness struct {
	cfg       Config
	proximity host.ProximityQuery
	lead      host.LeadDistanceSource
	sink      host.AnnouncementSink

	Lane      *LaneChangeDetector
	Overtake  *OvertakeTracker
	Following *FollowingMonitor

	laneThrottle     *timeutil.Throttle
	overtakeThrottle *timeutil.Throttle
	followThrottle   *timeutil.Throttle
}

// New wires the detectors. Any host collaborator may be nil; the matching
// detector is then skipped.
func New(cfg Config, proximity host.ProximityQuery, lead host.LeadDistanceSource, sink host.AnnouncementSink, speeds SpeedControl) *Awareness {
	return &Awareness{
		cfg:              cfg,
		proximity:        proximity,
		lead:             lead,
		sink:             sink,
		Lane:             NewLaneChangeDetector(cfg.Lane),
		Overtake:         NewOvertakeTracker(cfg.Overtake),
		Following:        NewFollowingMonitor(cfg.Following, speeds),
		laneThrottle:     timeutil.NewThrottle(cfg.Lane.CheckIntervalTicks),
		overtakeThrottle: timeutil.NewThrottle(cfg.Overtake.IntervalTicks),
		followThrottle:   timeutil.NewThrottle(cfg.Following.IntervalTicks),
	}
}

// SetLeadDistanceSource swaps the lead-distance collaborator.
func (a *Awareness) SetLeadDistanceSource(lead host.LeadDistanceSource) { a.lead = lead }

// Update runs whichever detectors are due. Invalid telemetry is ignored.
func (a *Awareness) Update(t host.Telemetry, now timeutil.Tick, style host.DrivingStyle, autonomy bool) {
	t, err := host.Validate(t)
	if err != nil {
		return
	}

	if a.laneThrottle.Due(now) {
		if ann, ok := a.Lane.Check(t, now); ok {
			a.announce(ann)
		}
	}

	if a.proximity != nil && a.overtakeThrottle.Due(now) {
		agents, err := a.proximity.NearbyAgents(t.Position, a.cfg.Overtake.Radius)
		if err != nil {
			logf("proximity query failed: %v", err)
		} else {
			for _, ann := range a.Overtake.Scan(t, agents, now) {
				a.announce(ann)
			}
		}
	}

	if a.followThrottle.Due(now) {
		var distance float64
		var ok bool
		if a.lead != nil {
			distance, ok = a.lead.LeadDistance()
		}
		if ann, fired := a.Following.Evaluate(t.Speed, distance, ok, now, style, autonomy); fired {
			a.announce(ann)
		}
	}
}

// Reset clears lane tracking, overtake records, the following band and
// the throttles.
func (a *Awareness) Reset() {
	a.Lane.Reset()
	a.Overtake.Reset()
	a.Following.Reset()
	a.laneThrottle.Reset()
	a.overtakeThrottle.Reset()
	a.followThrottle.Reset()
}

func (a *Awareness) announce(ann host.Announcement) {
	if a.sink == nil {
		return
	}
	if err := a.sink.Announce(ann); err != nil {
		logf("announce %q failed: %v", ann.Text, err)
	}
}
