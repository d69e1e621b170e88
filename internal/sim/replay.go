package sim

import (
	"fmt"

	"github.com/banshee-data/velocity.assist/internal/assist"
	"github.com/banshee-data/velocity.assist/internal/host"
	"github.com/banshee-data/velocity.assist/internal/monitoring"
)

var logf = monitoring.Component("sim")

// Result is everything a replay produced.
type Result struct {
	Frames        []assist.Frame
	Announcements []host.Announcement
	ActuatorErrs  int
	Distance      float64 // metres travelled by the ego vehicle
}

// ReplayOptions tweak a replay without editing the scenario.
type ReplayOptions struct {
	Recorder   assist.Recorder         // may be nil
	OnAnnounce func(host.Announcement) // may be nil
	MaxTicks   int                     // overrides Scenario.Ticks when positive
}

// Replay runs scn through a fresh session until the road or the tick
// budget runs out.
func Replay(scn *Scenario, cfg assist.Config, opts ReplayOptions) (*Result, error) {
	style, err := scn.DrivingStyle()
	if err != nil {
		return nil, err
	}
	h, err := NewHost(scn)
	if err != nil {
		return nil, fmt.Errorf("build host: %w", err)
	}
	h.OnAnnounce = opts.OnAnnounce

	sess, err := assist.New(cfg, assist.Host{
		Telemetry: h,
		Road:      h,
		Proximity: h,
		Lead:      h,
		Actuator:  h,
		Sink:      h,
	}, opts.Recorder)
	if err != nil {
		return nil, err
	}

	sess.SetDrivingStyle(style)
	sess.SetAutonomy(scn.Autonomy)
	if scn.Friction > 0 {
		sess.SetFriction(scn.Friction)
	}
	sess.Start(h.Tick())
	applyArbiterInputs(sess, scn)

	maxTicks := scn.Ticks
	if opts.MaxTicks > 0 {
		maxTicks = opts.MaxTicks
	}

	res := &Result{}
	start := h.egoS
	for i := 0; i < maxTicks && !h.Done(); i++ {
		if scn.EmergencyRadius > 0 {
			sess.SetEmergencyOverride(h.SirenWithin(scn.EmergencyRadius))
		}
		f, err := sess.Tick(h.Tick())
		if err != nil {
			res.ActuatorErrs++
			logf("tick %d: %v", h.Tick(), err)
		}
		res.Frames = append(res.Frames, f)
		h.Step()
	}
	sess.Stop()

	res.Announcements = h.Announcements
	res.Distance = h.egoS - start
	return res, nil
}

// applyArbiterInputs sets the base speed, multipliers and arrival cap after
// Start, since Start resets them.
func applyArbiterInputs(sess *assist.Session, scn *Scenario) {
	arb := sess.Arbiter()
	arb.SetBaseSpeed(scn.BaseSpeed)
	if m := scn.Multipliers.Style; m != nil {
		arb.SetStyleMultiplier(*m)
	}
	if m := scn.Multipliers.Road; m != nil {
		arb.SetRoadMultiplier(*m)
	}
	if m := scn.Multipliers.Weather; m != nil {
		arb.SetWeatherMultiplier(*m)
	}
	if m := scn.Multipliers.Time; m != nil {
		arb.SetTimeMultiplier(*m)
	}
	if scn.ArrivalCap != nil {
		arb.SetArrivalCap(*scn.ArrivalCap)
	}
}
