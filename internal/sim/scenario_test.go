package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	t.Parallel()

	scn, err := LoadScenario("testdata/corner.json")
	require.NoError(t, err)
	assert.Equal(t, "corner", scn.Name)
	assert.Len(t, scn.Road, 3)
	assert.Equal(t, DefaultNodeSpacing, scn.NodeSpacing)
	assert.Equal(t, DefaultLaneWidth, scn.LaneWidth)
	assert.Equal(t, DefaultTickSeconds, scn.TickSeconds)
	assert.Len(t, scn.Agents, 1)
}

func TestLoadScenarioRejectsBadFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yaml := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(yaml, []byte("name: x"), 0o644))
	_, err := LoadScenario(yaml)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0o644))
	_, err = LoadScenario(broken)
	assert.Error(t, err)

	_, err = LoadScenario(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestScenarioValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
	}{
		{"one waypoint", `{"road":[{"x":0,"y":0}],"ticks":10}`},
		{"no ticks", `{"road":[{"x":0,"y":0},{"x":0,"y":10}]}`},
		{"negative base speed", `{"road":[{"x":0,"y":0},{"x":0,"y":10}],"ticks":10,"base_speed":-1}`},
		{"bad style", `{"road":[{"x":0,"y":0},{"x":0,"y":10}],"ticks":10,"style":"sporty"}`},
		{"negative decel", `{"road":[{"x":0,"y":0},{"x":0,"y":10}],"ticks":10,"kinematics":{"a_dcc":-1}}`},
		{"duplicate agent", `{"road":[{"x":0,"y":0},{"x":0,"y":10}],"ticks":10,"agents":[{"id":1},{"id":1}]}`},
		{"negative spacing", `{"road":[{"x":0,"y":0},{"x":0,"y":10}],"ticks":10,"node_spacing":-5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseScenario([]byte(tt.json))
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestKinematicsStep(t *testing.T) {
	t.Parallel()

	k := Kinematics{AAcc: 2, ADcc: 4}

	d, v := k.Step(10, 20, 1)
	assert.InDelta(t, 11, d, 1e-9)
	assert.InDelta(t, 12, v, 1e-9)

	// Reaches the target half way through the step.
	d, v = k.Step(19, 20, 1)
	assert.InDelta(t, 19.75, d, 1e-9)
	assert.InDelta(t, 20, v, 1e-9)

	d, v = k.Step(20, 10, 1)
	assert.InDelta(t, 18, d, 1e-9)
	assert.InDelta(t, 16, v, 1e-9)

	d, v = Kinematics{}.Step(20, 10, 1)
	assert.InDelta(t, 10, d, 1e-9)
	assert.InDelta(t, 10, v, 1e-9)
}
