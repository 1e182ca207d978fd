package session

import (
	"github.com/milk9111/wayfarer/common"
	"github.com/milk9111/wayfarer/companion"
	"github.com/milk9111/wayfarer/ecs/system"
	"github.com/milk9111/wayfarer/motion"
	"github.com/milk9111/wayfarer/prefabs"
)

type AgentConfig struct {
	Name   string
	Sprite string
	Motion motion.Config
}

type CameraConfig struct {
	Zoom       float64
	Smoothness float64
}

// ViewConfig is the size of the screen a world is shown in. The zero value
// keeps the world's own origin.
type ViewConfig struct {
	Width  float64
	Height float64
}

type Config struct {
	Leader           AgentConfig
	Companion        AgentConfig
	CompanionEnabled bool
	Pursuit          companion.Config
	MaxExpansions    int
	MarkerLifetime   float64
	Camera           CameraConfig
	// View centres the world in a screen of this size when set.
	View ViewConfig
	// DT is the simulated length of one Update, in seconds.
	DT float64
}

func DefaultConfig() Config {
	return Config{
		Leader:           AgentConfig{Name: "player", Sprite: "player", Motion: motion.DefaultConfig()},
		Companion:        AgentConfig{Name: "companion", Sprite: "companion", Motion: motion.Config{Speed: 110}},
		CompanionEnabled: true,
		Pursuit:          companion.DefaultConfig(),
		MarkerLifetime:   system.DefaultMarkerLifetime,
		Camera:           CameraConfig{Zoom: 2, Smoothness: 0.1},
		DT:               common.FrameDelta,
	}
}

// ConfigFromSpec applies agents.yaml over the defaults. fast multiplies the
// leader's speed by fast_multiplier.
func ConfigFromSpec(spec *prefabs.AgentsSpec, fast bool) Config {
	cfg := DefaultConfig()
	if spec == nil {
		return cfg
	}

	applyAgent(&cfg.Leader, spec.Leader)
	applyAgent(&cfg.Companion, spec.Companion.AgentSpec)
	cfg.CompanionEnabled = spec.CompanionEnabled()
	if fast {
		mult := spec.FastMultiplier
		if mult <= 0 {
			mult = 2
		}
		cfg.Leader.Motion.Speed *= mult
	}

	c := spec.Companion
	if c.TrailCapacity > 0 {
		cfg.Pursuit.TrailCapacity = c.TrailCapacity
	}
	if c.SampleSpacing > 0 {
		cfg.Pursuit.SampleSpacing = c.SampleSpacing
	}
	if c.FollowDistance > 0 {
		cfg.Pursuit.FollowDistance = c.FollowDistance
	}
	if c.StopThreshold > 0 {
		cfg.Pursuit.StopThreshold = c.StopThreshold
	}

	if spec.Pathfinding.MaxExpansions > 0 {
		cfg.MaxExpansions = spec.Pathfinding.MaxExpansions
	}
	if spec.Marker.Lifetime > 0 {
		cfg.MarkerLifetime = spec.Marker.Lifetime
	}
	if spec.Camera.Zoom > 0 {
		cfg.Camera.Zoom = spec.Camera.Zoom
	}
	if spec.Camera.Smoothness > 0 {
		cfg.Camera.Smoothness = spec.Camera.Smoothness
	}
	return cfg
}

func applyAgent(dst *AgentConfig, spec prefabs.AgentSpec) {
	if spec.Name != "" {
		dst.Name = spec.Name
	}
	if spec.Sprite != "" {
		dst.Sprite = spec.Sprite
	}
	if spec.Speed > 0 {
		dst.Motion.Speed = spec.Speed
	}
	if spec.ArriveEpsilon > 0 {
		dst.Motion.ArriveEpsilon = spec.ArriveEpsilon
	}
	if spec.FrameInterval > 0 {
		dst.Motion.FrameInterval = spec.FrameInterval
	}
}
