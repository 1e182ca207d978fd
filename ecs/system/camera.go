package system

import (
	"github.com/milk9111/wayfarer/common"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// CameraSystem eases every camera toward the player agent. The first update
// snaps so a fresh world does not pan in from the origin.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (s *CameraSystem) Update(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	agent, ok := ecs.Get(w, player, component.AgentComponent.Kind())
	if !ok || agent.Motion == nil {
		return
	}
	target := agent.Motion.Position()

	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		if !cam.Snapped || cam.Smoothness <= 0 || cam.Smoothness >= 1 {
			cam.X, cam.Y = target.X, target.Y
			cam.Snapped = true
			return
		}
		cam.X = common.Lerp64(cam.X, target.X, cam.Smoothness)
		cam.Y = common.Lerp64(cam.Y, target.Y, cam.Smoothness)
	})
}
