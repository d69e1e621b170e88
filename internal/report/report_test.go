package report

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/velocity.assist/internal/arbiter"
	"github.com/banshee-data/velocity.assist/internal/assist"
	"github.com/banshee-data/velocity.assist/internal/testutil"
	"github.com/banshee-data/velocity.assist/internal/timeutil"
	"github.com/banshee-data/velocity.assist/internal/tracedb"
	"github.com/banshee-data/velocity.assist/internal/units"
)

func sampleFrames() []assist.Frame {
	var frames []assist.Frame
	for i := 0; i < 20; i++ {
		f := assist.Frame{
			Tick:         timeutil.Tick(100 + i),
			Telemetry:    testutil.Telemetry(0, float64(i), 0, 20-float64(i)*0.1),
			Decision:     arbiter.Decision{Effective: 20},
			CurveCap:     math.Inf(1),
			FollowingCap: math.Inf(1),
		}
		if i >= 5 && i < 10 {
			f.CurveCap = 15
			f.Decision.Effective = 15
		}
		frames = append(frames, f)
	}
	return frames
}

func TestFromFramesConvertsUnits(t *testing.T) {
	t.Parallel()

	frames := sampleFrames()
	tr := FromFrames("corner", units.Metric, frames)
	require.Len(t, tr.Samples, len(frames))
	assert.Equal(t, units.KMPH, tr.SpeedUnit)

	assert.InDelta(t, 72, tr.Samples[0].Speed, 1e-9)
	assert.InDelta(t, 72, tr.Samples[0].Commanded, 1e-9)
	assert.True(t, math.IsNaN(tr.Samples[0].CurveCap))
	assert.InDelta(t, 54, tr.Samples[5].CurveCap, 1e-9)
	assert.True(t, math.IsNaN(tr.Samples[5].FollowingCap))

	imp := FromFrames("corner", units.Imperial, frames)
	assert.Equal(t, units.MPH, imp.SpeedUnit)
	assert.InDelta(t, 44.74, imp.Samples[0].Speed, 0.01)
}

func TestFromDecisions(t *testing.T) {
	t.Parallel()

	rows := []tracedb.DecisionRow{
		{Tick: 1, Speed: 10, Effective: 12, CurveCap: math.Inf(1), FollowingCap: 11},
	}
	tr := FromDecisions("db", units.Metric, rows)
	require.Len(t, tr.Samples, 1)
	assert.Equal(t, int64(1), tr.Samples[0].Tick)
	assert.InDelta(t, 36, tr.Samples[0].Speed, 1e-9)
	assert.InDelta(t, 43.2, tr.Samples[0].Commanded, 1e-9)
	assert.True(t, math.IsNaN(tr.Samples[0].CurveCap))
	assert.InDelta(t, 39.6, tr.Samples[0].FollowingCap, 1e-9)
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, FromFrames("Corner replay", units.Metric, sampleFrames())))

	out := buf.String()
	assert.True(t, strings.Contains(out, "<html"), "expected an HTML document")
	for _, want := range []string{"Corner replay", "actual", "commanded", "curve cap", "following cap"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderPNG(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, FromFrames("Corner replay", units.Metric, sampleFrames())))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	b := img.Bounds()
	assert.Greater(t, b.Dx(), b.Dy(), "chart should be landscape")
}

func TestRenderEmptyTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.ErrorIs(t, RenderHTML(&buf, Trace{Title: "empty"}), ErrEmptyTrace)
	assert.ErrorIs(t, RenderPNG(&buf, Trace{Title: "empty"}), ErrEmptyTrace)
}

func TestSegmentsSplitOnGaps(t *testing.T) {
	t.Parallel()

	tr := FromFrames("gaps", units.Metric, sampleFrames())
	segs := segments(tr.Samples, func(s Sample) float64 { return s.CurveCap })
	require.Len(t, segs, 1)
	assert.Len(t, segs[0], 5)
	assert.Equal(t, float64(105), segs[0][0].X)

	all := segments(tr.Samples, func(s Sample) float64 { return s.Speed })
	require.Len(t, all, 1)
	assert.Len(t, all[0], len(tr.Samples))
}
