package system

import (
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// CompanionSystem feeds each companion its leader's position and ticks it.
// It runs after MotionSystem so companions see where the leader is this
// frame.
type CompanionSystem struct {
	dt float64
}

func NewCompanionSystem(dt float64) *CompanionSystem {
	return &CompanionSystem{dt: dt}
}

func (s *CompanionSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.CompanionComponent.Kind(), component.AgentComponent.Kind(), func(e ecs.Entity, c *component.Companion, agent *component.Agent) {
		if c.Pursuit == nil {
			return
		}

		leader, ok := ecs.Get(w, ecs.Entity(c.Leader), component.AgentComponent.Kind())
		if !ok || leader.Motion == nil {
			if agent.Motion != nil {
				agent.Motion.Update(s.dt)
			}
			return
		}

		failures := c.Pursuit.Failures()
		c.Pursuit.Update(leader.Motion.Position(), s.dt)
		if c.Pursuit.Failures() > failures {
			target, _ := c.Pursuit.Target()
			w.Events().Push(ecs.Event{Type: EventCompanionStuck, Entity: e, Data: target})
		}
	})
}
