package assist

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/velocity.assist/internal/arbiter"
	"github.com/banshee-data/velocity.assist/internal/curve"
	"github.com/banshee-data/velocity.assist/internal/host"
	"github.com/banshee-data/velocity.assist/internal/roadscan"
	"github.com/banshee-data/velocity.assist/internal/testutil"
	"github.com/banshee-data/velocity.assist/internal/traffic"
)

type memRecorder struct {
	frames        []Frame
	announcements []host.Announcement
	err           error
}

func (m *memRecorder) RecordFrame(f Frame) error {
	m.frames = append(m.frames, f)
	return m.err
}

func (m *memRecorder) RecordAnnouncement(a host.Announcement) error {
	m.announcements = append(m.announcements, a)
	return m.err
}

type fixture struct {
	tel  *testutil.StaticTelemetry
	road *testutil.ScriptedRoad
	prox *testutil.Proximity
	lead *testutil.LeadDistance
	act  *testutil.RecordingActuator
	sink *testutil.RecordingSink
	rec  *memRecorder
	s    *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tel:  &testutil.StaticTelemetry{T: testutil.Telemetry(0, 0, 0, 20)},
		road: testutil.StraightRoad(r3.Vec{}, 0, 5, 300),
		prox: &testutil.Proximity{},
		lead: &testutil.LeadDistance{},
		act:  &testutil.RecordingActuator{},
		sink: &testutil.RecordingSink{},
		rec:  &memRecorder{},
	}
	s, err := New(DefaultConfig(), Host{
		Telemetry: f.tel,
		Road:      f.road,
		Proximity: f.prox,
		Lead:      f.lead,
		Actuator:  f.act,
		Sink:      f.sink,
	}, f.rec)
	require.NoError(t, err)
	s.Arbiter().SetBaseSpeed(20)
	f.s = s
	return f
}

func TestNewRequiresCollaborators(t *testing.T) {
	t.Parallel()

	_, err := New(DefaultConfig(), Host{Actuator: &testutil.RecordingActuator{}}, nil)
	assert.ErrorIs(t, err, ErrMissingCollaborator)

	_, err = New(DefaultConfig(), Host{Telemetry: &testutil.StaticTelemetry{}}, nil)
	assert.ErrorIs(t, err, ErrMissingCollaborator)

	s, err := New(DefaultConfig(), Host{Telemetry: &testutil.StaticTelemetry{}, Actuator: &testutil.RecordingActuator{}}, nil)
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestTickRequiresStart(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.s.Tick(0)
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.Zero(t, f.act.Calls())
}

func TestTickActuatesOncePerChange(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.s.Start(0)

	fr, err := f.s.Tick(1)
	require.NoError(t, err)
	assert.True(t, fr.Valid)
	assert.True(t, fr.Decision.Actuated)
	assert.InDelta(t, 20, f.act.Last(), 1e-9)
	assert.InDelta(t, 21, f.act.Ceilings[0], 1e-9)

	fr, err = f.s.Tick(2)
	require.NoError(t, err)
	assert.False(t, fr.Decision.Actuated)
	assert.Equal(t, 1, f.act.Calls())

	f.s.Arbiter().SetWeatherMultiplier(0.5)
	f.s.Tick(3)
	assert.Equal(t, 2, f.act.Calls())
	assert.InDelta(t, 10, f.act.Last(), 1e-9)
}

func TestCurveSlowdownFlowsThroughArbiter(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.road.SetHeadingFrom(r3.Vec{}, 0, 50, 120)
	f.s.SetAutonomy(true)
	f.s.Start(0)

	fr, err := f.s.Tick(1)
	require.NoError(t, err)

	want := curve.DefaultModel().Classify(0, 120, 50, 20, curve.DefaultFriction, host.StyleNormal)
	assert.True(t, fr.SlowdownActive)
	assert.InDelta(t, want.SafeSpeed, fr.Decision.Effective, 1e-9)
	assert.InDelta(t, want.SafeSpeed, f.act.Last(), 1e-9)
	assert.Equal(t, 1, f.act.Calls(), "one command per tick")
	assert.Equal(t, 1, fr.Announcements)
	require.Len(t, f.sink.ByCategory(roadscan.CategoryCurve), 1)

	// Drive away from the road; the slowdown runs out after its window.
	f.tel.T = testutil.Telemetry(1000, 1000, 0, 20)
	fr, _ = f.s.Tick(101)
	assert.True(t, fr.SlowdownActive)
	fr, _ = f.s.Tick(102)
	assert.False(t, fr.SlowdownActive)
	assert.True(t, math.IsInf(fr.CurveCap, 1))
	assert.InDelta(t, 20, f.act.Last(), 1e-9)
}

func TestCapsComposeWithinOneTick(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.road.SetHeadingFrom(r3.Vec{}, 0, 50, 120)
	f.lead.Distance, f.lead.OK = 10, true
	f.s.SetAutonomy(true)
	f.s.Start(0)

	fr, err := f.s.Tick(1)
	require.NoError(t, err)
	assert.Equal(t, traffic.BandDangerous, fr.FollowingBand)
	assert.InDelta(t, math.Min(fr.CurveCap, fr.FollowingCap), fr.Decision.Effective, 1e-9)
	assert.Equal(t, 1, f.act.Calls())
	assert.Equal(t, 2, fr.Announcements)
}

func TestAutonomyOffNarratesWithoutCaps(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.road.SetHeadingFrom(r3.Vec{}, 0, 50, 120)
	f.lead.Distance, f.lead.OK = 10, true
	f.s.Start(0)

	fr, _ := f.s.Tick(1)
	assert.False(t, fr.SlowdownActive)
	assert.InDelta(t, 20, fr.Decision.Effective, 1e-9)
	assert.Equal(t, 2, fr.Announcements)
}

func TestEmergencyOverrideSuspendsActuation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.s.Start(0)
	f.s.SetEmergencyOverride(true)

	fr, _ := f.s.Tick(1)
	assert.True(t, fr.Suspended)
	assert.Zero(t, f.act.Calls())

	f.s.SetEmergencyOverride(false)
	fr, _ = f.s.Tick(2)
	assert.False(t, fr.Suspended)
	assert.True(t, fr.Decision.Actuated)
	assert.Equal(t, 1, f.act.Calls())
}

func TestInvalidTelemetryStillApplies(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.tel.T = host.Telemetry{}
	f.s.Start(0)

	fr, err := f.s.Tick(1)
	require.NoError(t, err)
	assert.False(t, fr.Valid)
	assert.True(t, fr.Decision.Actuated)
	assert.Zero(t, f.road.NearestCalls)

	f.tel.Err = errors.New("vehicle despawned")
	fr, err = f.s.Tick(2)
	require.NoError(t, err)
	assert.False(t, fr.Valid)
}

func TestActuatorFailureRetries(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.s.Start(0)
	f.act.Err = errors.New("bus busy")

	_, err := f.s.Tick(1)
	require.Error(t, err)

	f.act.Err = nil
	fr, err := f.s.Tick(2)
	require.NoError(t, err)
	assert.True(t, fr.Decision.Actuated)
}

func TestRecorderSeesFramesAndAnnouncements(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.road.SetHeadingFrom(r3.Vec{}, 0, 100, 40)
	f.s.Start(0)
	f.s.Tick(1)
	f.s.Tick(2)

	require.Len(t, f.rec.frames, 2)
	assert.Equal(t, []string{"Moderate right curve in 100 meters"}, f.sink.Texts())
	require.Len(t, f.rec.announcements, 1)
	assert.Equal(t, f.sink.Announcements[0], f.rec.announcements[0])

	f.rec.err = errors.New("disk full")
	assert.NotPanics(t, func() { f.s.Tick(3) })
}

func TestStopResetsComponents(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.road.SetHeadingFrom(r3.Vec{}, 0, 50, 120)
	f.s.SetAutonomy(true)
	f.s.Start(0)
	f.s.Tick(1)
	require.True(t, f.s.Scanner().Slowdown().Active)

	f.s.Stop()
	assert.False(t, f.s.Running())
	assert.False(t, f.s.Scanner().Slowdown().Active)
	assert.True(t, math.IsInf(f.s.Arbiter().CapValue(arbiter.CapCurve), 1))
	assert.InDelta(t, 20, f.s.Arbiter().BaseSpeed(), 1e-9)

	_, err := f.s.Tick(2)
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestCollaboratorSetters(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.s.SetDrivingStyle(host.StyleReckless)
	assert.Equal(t, host.StyleReckless, f.s.DrivingStyle())
	f.s.SetFriction(0.3)
	assert.InDelta(t, 0.3, f.s.Scanner().Friction(), 1e-9)
}
