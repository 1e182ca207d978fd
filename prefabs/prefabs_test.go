package prefabs

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/wayfarer/world"
)

func TestEmbeddedAgentsSpec(t *testing.T) {
	spec, err := LoadAgentsSpec()
	require.NoError(t, err)

	assert.Equal(t, 100.0, spec.Leader.Speed)
	assert.Equal(t, 2.0, spec.Leader.ArriveEpsilon)
	assert.Equal(t, 0.2, spec.Leader.FrameInterval)
	assert.Greater(t, spec.Companion.Speed, spec.Leader.Speed)
	assert.Equal(t, 50, spec.Companion.TrailCapacity)
	assert.Equal(t, 8.0, spec.Companion.SampleSpacing)
	assert.Equal(t, 5, spec.Companion.FollowDistance)
	assert.Equal(t, 5.0, spec.Companion.StopThreshold)
	assert.Equal(t, 1000, spec.Pathfinding.MaxExpansions)
	assert.Equal(t, 0.5, spec.Marker.Lifetime)
	assert.True(t, spec.CompanionEnabled())
}

func TestEmbeddedTilesSpec(t *testing.T) {
	spec, err := LoadTilesSpec()
	require.NoError(t, err)

	types := spec.TileTypes()
	assert.True(t, types.Walkable(10))
	assert.False(t, types.Walkable(50))
	assert.False(t, types.Walkable(60))
	assert.True(t, types.Walkable(999), "unlisted tiles are walkable")
	assert.Equal(t, "grass-middle-1", types.Lookup(10).Name)

	palette := spec.Palette()
	assert.Contains(t, palette, world.Tile(60))
}

func TestCompanionEnabledDefault(t *testing.T) {
	var spec AgentsSpec
	require.NoError(t, yaml.Unmarshal([]byte("companion: {speed: 90}"), &spec))
	assert.True(t, spec.CompanionEnabled())
	assert.Equal(t, 90.0, spec.Companion.Speed)

	require.NoError(t, yaml.Unmarshal([]byte("companion: {enabled: false}"), &spec))
	assert.False(t, spec.CompanionEnabled())
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{in: `"#FFFF00"`, want: color.NRGBA{R: 255, G: 255, A: 255}},
		{in: `"10203040"`, want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{in: `"#FFF"`, wantErr: true},
		{in: `"#GGGGGG"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Color)
		})
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"autopilot", "autopilot.tengo", "scripts/autopilot.tengo", "prefabs/scripts/autopilot.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "click")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want ChangeKind
		ok   bool
	}{
		{"prefabs/agents.yaml", ChangeSpec, true},
		{"prefabs/scripts/autopilot.tengo", ChangeScript, true},
		{"levels/tutorial.JSON", ChangeWorld, true},
		{"levels/notes.txt", 0, false},
	}
	for _, tt := range tests {
		got, ok := classify(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		if ok {
			assert.Equal(t, tt.want, got, tt.path)
		}
	}
}
