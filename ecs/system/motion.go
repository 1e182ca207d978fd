package system

import (
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// MotionSystem advances every agent that walks on its own. Companions are
// ticked by CompanionSystem.
type MotionSystem struct {
	dt float64
}

func NewMotionSystem(dt float64) *MotionSystem {
	return &MotionSystem{dt: dt}
}

func (s *MotionSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AgentComponent.Kind(), func(e ecs.Entity, agent *component.Agent) {
		if agent.Motion == nil || ecs.Has(w, e, component.CompanionComponent.Kind()) {
			return
		}
		agent.Motion.Update(s.dt)
	})
}
