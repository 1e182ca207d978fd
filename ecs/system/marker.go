package system

import (
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// MarkerSystem ages click markers and destroys them once faded.
type MarkerSystem struct {
	dt float64
}

func NewMarkerSystem(dt float64) *MarkerSystem {
	return &MarkerSystem{dt: dt}
}

func (s *MarkerSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.ClickMarkerComponent.Kind(), func(e ecs.Entity, m *component.ClickMarker) {
		m.Age += s.dt
		if m.Age >= m.Lifetime {
			ecs.DestroyEntity(w, e)
		}
	})
}

// MarkerAlpha is the marker's opacity, easing out over its lifetime.
func MarkerAlpha(m component.ClickMarker) float64 {
	if m.Lifetime <= 0 || m.Age >= m.Lifetime {
		return 0
	}
	t := 1 - m.Age/m.Lifetime
	return t * t
}
