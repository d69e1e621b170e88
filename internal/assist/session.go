package assist

import (
	"errors"
	"fmt"

	"github.com/banshee-data/velocity.assist/internal/arbiter"
	"github.com/banshee-data/velocity.assist/internal/host"
	"github.com/banshee-data/velocity.assist/internal/monitoring"
	"github.com/banshee-data/velocity.assist/internal/roadscan"
	"github.com/banshee-data/velocity.assist/internal/timeutil"
	"github.com/banshee-data/velocity.assist/internal/traffic"
)

var logf = monitoring.Component("assist")

var (
	// ErrNotRunning is returned by Tick outside Start/Stop.
	ErrNotRunning = errors.New("session not running")
	// ErrMissingCollaborator is returned by New when a required host
	// interface is nil.
	ErrMissingCollaborator = errors.New("missing host collaborator")
)

// Host groups the host interfaces a session talks to. Telemetry and
// Actuator are required; the rest may be nil.
type Host struct {
	Telemetry host.TelemetrySource
	Road      host.RoadGraph
	Proximity host.ProximityQuery
	Lead      host.LeadDistanceSource
	Actuator  host.Actuator
	Sink      host.AnnouncementSink
}

// Recorder persists what a session did. tracedb.Run satisfies it.
type Recorder interface {
	RecordFrame(f Frame) error
	RecordAnnouncement(a host.Announcement) error
}

// Frame summarises one tick.
type Frame struct {
	Tick           timeutil.Tick
	Telemetry      host.Telemetry
	Valid          bool
	Decision       arbiter.Decision
	SlowdownActive bool
	CurveCap       float64 // +Inf when unbounded
	FollowingCap   float64 // +Inf when unbounded
	FollowingBand  traffic.Band
	Announcements  int
	Suspended      bool
}

// Session owns every component for one drive.
type Session struct {
	cfg  Config
	host Host
	rec  Recorder
	sink *recordingSink

	arb   *arbiter.Arbiter
	scan  *roadscan.Scanner
	aware *traffic.Awareness

	style     host.DrivingStyle
	autonomy  bool
	emergency bool
	running   bool
	startedAt timeutil.Tick
}

// New wires a session. rec may be nil.
func New(cfg Config, h Host, rec Recorder) (*Session, error) {
	if h.Telemetry == nil {
		return nil, fmt.Errorf("%w: telemetry source", ErrMissingCollaborator)
	}
	if h.Actuator == nil {
		return nil, fmt.Errorf("%w: actuator", ErrMissingCollaborator)
	}

	s := &Session{cfg: cfg, host: h, rec: rec, style: host.StyleNormal}
	s.sink = &recordingSink{next: h.Sink, rec: rec}
	s.arb = arbiter.New(cfg.Arbiter)
	s.scan = roadscan.New(cfg.Scan, h.Road, s.sink, s.arb)
	s.aware = traffic.New(cfg.Traffic, h.Proximity, h.Lead, s.sink, s.arb)
	return s, nil
}

// Arbiter exposes the arbiter for base speed, multiplier and arrival cap
// collaborators.
func (s *Session) Arbiter() *arbiter.Arbiter { return s.arb }

// Scanner returns the road scanner.
func (s *Session) Scanner() *roadscan.Scanner { return s.scan }

// Awareness returns the traffic awareness component.
func (s *Session) Awareness() *traffic.Awareness { return s.aware }

// Running reports whether the session is between Start and Stop.
func (s *Session) Running() bool { return s.running }

// Start resets every component and begins accepting ticks.
func (s *Session) Start(now timeutil.Tick) {
	s.resetAll()
	s.running = true
	s.startedAt = now
	logf("session started at tick %d", now)
}

// Stop resets every component and stops accepting ticks.
func (s *Session) Stop() {
	if !s.running {
		return
	}
	s.resetAll()
	s.running = false
	logf("session stopped")
}

func (s *Session) resetAll() {
	s.scan.Reset()
	s.aware.Reset()
	s.arb.Reset()
	if s.emergency {
		s.arb.Suspend()
	}
}

// SetFriction forwards a road friction estimate to the scanner.
func (s *Session) SetFriction(mu float64) { s.scan.SetFriction(mu) }

// SetDrivingStyle sets the style used for curve speeds and following rates.
func (s *Session) SetDrivingStyle(style host.DrivingStyle) { s.style = style }

// DrivingStyle returns the current style.
func (s *Session) DrivingStyle() host.DrivingStyle { return s.style }

// SetAutonomy enables speed control by the scanner and following monitor.
// With it off they still narrate but publish no caps.
func (s *Session) SetAutonomy(on bool) { s.autonomy = on }

// SetEmergencyOverride hands the vehicle to the emergency-yield
// collaborator. While on, the arbiter does not actuate.
func (s *Session) SetEmergencyOverride(on bool) {
	if on == s.emergency {
		return
	}
	s.emergency = on
	if on {
		s.arb.Suspend()
		logf("emergency override engaged")
		return
	}
	s.arb.Resume()
	logf("emergency override released")
}

// Tick runs one cycle. The returned error reports an actuator failure; the
// arbiter stays dirty and retries next tick.
func (s *Session) Tick(now timeutil.Tick) (Frame, error) {
	if !s.running {
		return Frame{Tick: now}, ErrNotRunning
	}
	s.sink.count = 0

	tel, err := s.host.Telemetry.Telemetry()
	if err != nil {
		logf("telemetry poll failed: %v", err)
	} else {
		tel, err = host.Validate(tel)
		if err != nil && !errors.Is(err, host.ErrVehicleMissing) {
			logf("telemetry rejected: %v", err)
		}
	}
	valid := err == nil
	control := s.autonomy && !s.emergency

	// Target excludes the curve cap so a slowdown is sized against the
	// speed the driver asked for.
	target := s.arb.ComputeEffectiveSpeedWithout(arbiter.CapCurve)
	s.scan.Update(tel, now, target, s.style, control)
	if valid {
		s.aware.Update(tel, now, s.style, control)
	}

	decision, applyErr := s.arb.Apply(s.host.Actuator)

	f := Frame{
		Tick:           now,
		Telemetry:      tel,
		Valid:          valid,
		Decision:       decision,
		SlowdownActive: s.scan.Slowdown().Active,
		CurveCap:       s.arb.CapValue(arbiter.CapCurve),
		FollowingCap:   s.arb.CapValue(arbiter.CapFollowing),
		FollowingBand:  s.aware.Following.Band(),
		Announcements:  s.sink.count,
		Suspended:      s.arb.Suspended(),
	}
	if s.rec != nil {
		if err := s.rec.RecordFrame(f); err != nil {
			logf("record frame %d failed: %v", now, err)
		}
	}
	return f, applyErr
}
