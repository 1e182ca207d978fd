package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/wayfarer/world"
)

const (
	AgentsFile = "agents.yaml"
	TilesFile  = "tiles.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type AgentSpec struct {
	Name          string     `yaml:"name"`
	Sprite        string     `yaml:"sprite"`
	Speed         float64    `yaml:"speed"`
	ArriveEpsilon float64    `yaml:"arrive_epsilon"`
	FrameInterval float64    `yaml:"frame_interval"`
	Color         *YAMLColor `yaml:"color"`
}

type CompanionSpec struct {
	AgentSpec      `yaml:",inline"`
	Enabled        *bool   `yaml:"enabled"`
	TrailCapacity  int     `yaml:"trail_capacity"`
	SampleSpacing  float64 `yaml:"sample_spacing"`
	FollowDistance int     `yaml:"follow_distance"`
	StopThreshold  float64 `yaml:"stop_threshold"`
}

type PathfindingSpec struct {
	MaxExpansions int `yaml:"max_expansions"`
}

type MarkerSpec struct {
	Lifetime float64    `yaml:"lifetime"`
	Radius   float64    `yaml:"radius"`
	Color    *YAMLColor `yaml:"color"`
}

type CameraSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

// AgentsSpec is prefabs/agents.yaml.
type AgentsSpec struct {
	Leader         AgentSpec       `yaml:"leader"`
	FastMultiplier float64         `yaml:"fast_multiplier"`
	Companion      CompanionSpec   `yaml:"companion"`
	Pathfinding    PathfindingSpec `yaml:"pathfinding"`
	Marker         MarkerSpec      `yaml:"marker"`
	Camera         CameraSpec      `yaml:"camera"`
}

func LoadAgentsSpec() (*AgentsSpec, error) {
	spec, err := LoadSpec[AgentsSpec](AgentsFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// CompanionEnabled defaults to true when the key is absent.
func (s AgentsSpec) CompanionEnabled() bool {
	return s.Companion.Enabled == nil || *s.Companion.Enabled
}

type TileTypeSpec struct {
	Name     string     `yaml:"name"`
	Walkable *bool      `yaml:"walkable"`
	Color    *YAMLColor `yaml:"color"`
}

// TilesSpec is prefabs/tiles.yaml: the tile type table keyed by tile index.
type TilesSpec struct {
	Tiles map[int]TileTypeSpec `yaml:"tiles"`
}

func LoadTilesSpec() (*TilesSpec, error) {
	spec, err := LoadSpec[TilesSpec](TilesFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// TileTypes converts the table for world decoding. Missing walkable flags
// default to walkable.
func (s TilesSpec) TileTypes() world.TileTypes {
	out := make(world.TileTypes, len(s.Tiles))
	for idx, t := range s.Tiles {
		out[world.Tile(idx)] = world.TileType{Name: t.Name, Walkable: t.Walkable == nil || *t.Walkable}
	}
	return out
}

// Palette returns the placeholder colour of every tile type that has one.
func (s TilesSpec) Palette() map[world.Tile]color.Color {
	out := make(map[world.Tile]color.Color, len(s.Tiles))
	for idx, t := range s.Tiles {
		if t.Color != nil && t.Color.Color != nil {
			out[world.Tile(idx)] = t.Color.Color
		}
	}
	return out
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
