package traffic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/velocity.assist/internal/host"
	"github.com/banshee-data/velocity.assist/internal/testutil"
	"github.com/banshee-data/velocity.assist/internal/timeutil"
)

func agent(id int64, x, y, speed float64) host.Agent {
	return host.Agent{ID: id, Position: r3.Vec{X: x, Y: y}, Speed: speed}
}

func newTracker() *OvertakeTracker {
	return NewOvertakeTracker(DefaultConfig().Overtake)
}

func TestOvertakeClassify(t *testing.T) {
	t.Parallel()

	o := newTracker()
	assert.Equal(t, Ahead, o.Classify(4.1))
	assert.Equal(t, Beside, o.Classify(4))
	assert.Equal(t, Beside, o.Classify(0))
	assert.Equal(t, Beside, o.Classify(-4))
	assert.Equal(t, Behind, o.Classify(-4.1))
}

func TestOvertakeEmitsExactlyOnePass(t *testing.T) {
	t.Parallel()

	o := newTracker()
	ego := testutil.Telemetry(0, 0, 0, 20)

	assert.Empty(t, o.Scan(ego, []host.Agent{agent(7, 3, 10, 10)}, 0))
	rec, ok := o.Record(7)
	require.True(t, ok)
	assert.Equal(t, Ahead, rec.State)

	assert.Empty(t, o.Scan(ego, []host.Agent{agent(7, 3, 0, 10)}, 10))
	rec, _ = o.Record(7)
	assert.Equal(t, Beside, rec.State)

	got := o.Scan(ego, []host.Agent{agent(7, 3, -10, 10)}, 20)
	require.Len(t, got, 1)
	assert.Equal(t, "Passed vehicle on the right", got[0].Text)
	assert.Equal(t, CategoryOvertake, got[0].Category)
	assert.Zero(t, o.Len())

	// Still behind on later scans: nothing new.
	for tick := 30; tick <= 300; tick += 10 {
		assert.Empty(t, o.Scan(ego, []host.Agent{agent(7, 3, -20, 10)}, timeutil.Tick(tick)))
	}
}

func TestOvertakeOnTheLeft(t *testing.T) {
	t.Parallel()

	o := newTracker()
	ego := testutil.Telemetry(0, 0, 90, 20) // eastbound; left is north

	o.Scan(ego, []host.Agent{agent(1, 10, 3, 10)}, 0)
	o.Scan(ego, []host.Agent{agent(1, 0, 3, 10)}, 10)
	got := o.Scan(ego, []host.Agent{agent(1, -10, 3, 10)}, 20)
	require.Len(t, got, 1)
	assert.Equal(t, "Passed vehicle on the left", got[0].Text)
}

func TestOvertakeDisappearanceProducesNoEvent(t *testing.T) {
	t.Parallel()

	o := newTracker()
	ego := testutil.Telemetry(0, 0, 0, 20)

	o.Scan(ego, []host.Agent{agent(7, 3, 10, 10)}, 0)
	o.Scan(ego, []host.Agent{agent(7, 3, 0, 10)}, 10)
	require.Equal(t, 1, o.Len())

	assert.Empty(t, o.Scan(ego, nil, 20))
	assert.Zero(t, o.Len())
	assert.Empty(t, o.Scan(ego, []host.Agent{agent(7, 3, -10, 10)}, 30))
}

func TestOvertakeRequiresClosingSpeed(t *testing.T) {
	t.Parallel()

	o := newTracker()
	ego := testutil.Telemetry(0, 0, 0, 20)

	o.Scan(ego, []host.Agent{agent(1, 0, 10, 19)}, 0)
	assert.Zero(t, o.Len(), "not closing fast enough to track")

	o.Scan(ego, []host.Agent{agent(2, 0, 10, 10)}, 10)
	o.Scan(ego, []host.Agent{agent(2, 3, 0, 10)}, 20)
	got := o.Scan(ego, []host.Agent{agent(2, 3, -10, 19.5)}, 30)
	assert.Empty(t, got, "agent sped up before the pass completed")
	rec, ok := o.Record(2)
	require.True(t, ok)
	assert.Equal(t, Behind, rec.State)
}

func TestOvertakeSkipsSirens(t *testing.T) {
	t.Parallel()

	o := newTracker()
	a := agent(3, 0, 10, 5)
	a.SirenOn = true
	o.Scan(testutil.Telemetry(0, 0, 0, 20), []host.Agent{a}, 0)
	assert.Zero(t, o.Len())
}

func TestOvertakeTableBounds(t *testing.T) {
	t.Parallel()

	o := newTracker()
	ego := testutil.Telemetry(0, 0, 0, 20)

	var agents []host.Agent
	for i := 0; i < 12; i++ {
		agents = append(agents, agent(int64(i), float64(i%3), 10+float64(i), 10))
	}
	o.Scan(ego, agents, 0)
	assert.Equal(t, 8, o.Len())

	// Only the first ten are examined, so agents 10 and 11 never appear.
	o.Reset()
	reordered := append([]host.Agent{}, agents[10:]...)
	reordered = append(reordered, agents[:10]...)
	o.Scan(ego, reordered, 0)
	_, ok := o.Record(10)
	assert.True(t, ok)
	_, ok = o.Record(9)
	assert.False(t, ok)
}

func TestOvertakeStaleRecordsAreEvicted(t *testing.T) {
	t.Parallel()

	o := newTracker()
	ego := testutil.Telemetry(0, 0, 0, 20)
	ahead := []host.Agent{agent(5, 0, 20, 10)}

	o.Scan(ego, ahead, 0)
	o.Scan(ego, ahead, 600)
	assert.Equal(t, 1, o.Len())
	o.Scan(ego, ahead, 601)
	assert.Zero(t, o.Len())
}

func TestOvertakePassCooldown(t *testing.T) {
	t.Parallel()

	o := newTracker()
	ego := testutil.Telemetry(0, 0, 0, 20)
	both := func(y float64) []host.Agent {
		return []host.Agent{agent(1, 3, y, 10), agent(2, -3, y+20, 10)}
	}

	o.Scan(ego, both(10), 0)
	o.Scan(ego, both(0), 10)
	assert.Len(t, o.Scan(ego, both(-10), 20), 1)
	o.Scan(ego, both(-20), 30)
	assert.Empty(t, o.Scan(ego, both(-30), 40), "second pass inside the cooldown")
	assert.Zero(t, o.Len())
}
