package host

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	good := Telemetry{Position: r3.Vec{X: 1, Y: 2, Z: 3}, HeadingDeg: -90, Speed: 12, Exists: true}

	tests := []struct {
		name    string
		mutate  func(*Telemetry)
		wantErr error
	}{
		{name: "missing vehicle", mutate: func(tm *Telemetry) { tm.Exists = false }, wantErr: ErrVehicleMissing},
		{name: "nan position", mutate: func(tm *Telemetry) { tm.Position.X = math.NaN() }, wantErr: ErrNonFinite},
		{name: "inf heading", mutate: func(tm *Telemetry) { tm.HeadingDeg = math.Inf(1) }, wantErr: ErrNonFinite},
		{name: "nan speed", mutate: func(tm *Telemetry) { tm.Speed = math.NaN() }, wantErr: ErrNonFinite},
		{name: "negative speed", mutate: func(tm *Telemetry) { tm.Speed = -1 }, wantErr: ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := good
			tt.mutate(&tm)
			_, err := Validate(tm)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	got, err := Validate(good)
	require.NoError(t, err)
	assert.InDelta(t, 270.0, got.HeadingDeg, 1e-9, "heading normalized into [0, 360)")
}

func TestHeadingDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to, want float64
	}{
		{0, 40, 40},
		{40, 0, -40},
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{180, 0, 180},
		{90, 270, 180},
		{0, 360, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, HeadingDelta(tt.from, tt.to), 1e-9, "from=%v to=%v", tt.from, tt.to)
	}
}

func TestForwardRightOffset(t *testing.T) {
	t.Parallel()

	f := Forward(0)
	assert.InDelta(t, 0, f.X, 1e-9)
	assert.InDelta(t, 1, f.Y, 1e-9)

	r := Right(0)
	assert.InDelta(t, 1, r.X, 1e-9, "right of north is east")
	assert.InDelta(t, 0, r.Y, 1e-9)

	r = Right(90)
	assert.InDelta(t, 0, r.X, 1e-9)
	assert.InDelta(t, -1, r.Y, 1e-9, "right of east is south")

	fwd, lat := Offset(r3.Vec{}, r3.Vec{X: 3, Y: 10, Z: 5}, 0)
	assert.InDelta(t, 10, fwd, 1e-9)
	assert.InDelta(t, 3, lat, 1e-9)
}

func TestNodeFlags(t *testing.T) {
	t.Parallel()

	n := RoadNodeSample{Flags: FlagJunction | FlagTrafficLight}
	assert.True(t, n.IsJunction())
	assert.True(t, n.HasTrafficLight())
	assert.False(t, RoadNodeSample{Flags: 2}.IsJunction())
}

func TestParseDrivingStyle(t *testing.T) {
	t.Parallel()

	s, err := ParseDrivingStyle("Reckless")
	require.NoError(t, err)
	assert.Equal(t, StyleReckless, s)

	s, err = ParseDrivingStyle("")
	require.NoError(t, err)
	assert.Equal(t, StyleNormal, s)

	_, err = ParseDrivingStyle("sporty")
	assert.Error(t, err)
	assert.Equal(t, "critical", PriorityCritical.String())
}
