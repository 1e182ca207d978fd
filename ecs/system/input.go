package system

import (
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/input"
)

// DefaultMarkerLifetime is how long the click marker takes to fade, in
// seconds.
const DefaultMarkerLifetime = 0.5

// InputSystem sends the player agent to the last destination requested this
// frame.
type InputSystem struct {
	source         input.Source
	markerLifetime float64
}

func NewInputSystem(source input.Source, markerLifetime float64) *InputSystem {
	if markerLifetime <= 0 {
		markerLifetime = DefaultMarkerLifetime
	}
	return &InputSystem{source: source, markerLifetime: markerLifetime}
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil || s.source == nil {
		return
	}

	requests := s.source.Poll()
	if len(requests) == 0 {
		return
	}
	dest := requests[len(requests)-1]

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	agent, ok := ecs.Get(w, player, component.AgentComponent.Kind())
	if !ok || agent.Motion == nil {
		return
	}

	if !agent.Motion.MoveTo(dest) {
		w.Events().Push(ecs.Event{Type: EventMoveRejected, Entity: player, Data: dest})
		return
	}
	w.Events().Push(ecs.Event{Type: EventMoveAccepted, Entity: player, Data: dest})

	e, ok := ecs.First(w, component.ClickMarkerComponent.Kind())
	if !ok {
		e = ecs.CreateEntity(w)
	}
	placeMarker(w, e, &component.ClickMarker{X: dest.X, Y: dest.Y, Lifetime: s.markerLifetime})
}

// placeMarker stores m on e, restarting its fade.
func placeMarker(w *ecs.World, e ecs.Entity, m *component.ClickMarker) {
	if err := ecs.Add(w, e, component.ClickMarkerComponent.Kind(), m); err != nil {
		w.Events().Push(ecs.Event{Type: EventMarkerFailed, Entity: e, Data: err})
	}
}
