package session

import (
	"sort"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/ecs/system"
	"github.com/milk9111/wayfarer/motion"
	"github.com/milk9111/wayfarer/world"
)

// AgentSnapshot is what a renderer needs to draw one agent.
type AgentSnapshot struct {
	Name      string
	Sprite    string
	Leader    bool
	Companion bool
	Position  world.PixelCoord
	Cell      world.GridCoord
	Facing    motion.Facing
	Moving    bool
	Pose      motion.Pose
	FrameKey  string
	Path      []world.PixelCoord
	Cursor    int
}

type MarkerSnapshot struct {
	Position world.PixelCoord
	Alpha    float64
}

type CameraSnapshot struct {
	X, Y float64
	Zoom float64
}

// Snapshot is a read-only view of one frame.
type Snapshot struct {
	Frame  uint64
	World  *world.World
	Agents []AgentSnapshot
	Marker *MarkerSnapshot
	Camera CameraSnapshot
	// Trail and Target belong to the companion and are empty without one.
	Trail     []world.PixelCoord
	Target    world.PixelCoord
	HasTarget bool
}

// Snapshot copies out the current frame. Agents are ordered by Y so a
// renderer can draw them back to front.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{Frame: s.frame, World: s.world}

	ecs.ForEach(s.ecs, component.AgentComponent.Kind(), func(e ecs.Entity, a *component.Agent) {
		if a.Motion == nil {
			return
		}
		st := a.Motion.State()
		snap.Agents = append(snap.Agents, AgentSnapshot{
			Name:      a.Name,
			Sprite:    a.Sprite,
			Leader:    ecs.Has(s.ecs, e, component.PlayerTagComponent.Kind()),
			Companion: ecs.Has(s.ecs, e, component.CompanionComponent.Kind()),
			Position:  st.Position,
			Cell:      s.world.ToGrid(st.Position),
			Facing:    st.Facing,
			Moving:    st.Moving,
			Pose:      a.Motion.Pose(),
			FrameKey:  a.Motion.FrameKey(),
			Path:      st.Path,
			Cursor:    st.Cursor,
		})
	})
	sort.SliceStable(snap.Agents, func(i, j int) bool {
		return snap.Agents[i].Position.Y < snap.Agents[j].Position.Y
	})

	if e, ok := ecs.First(s.ecs, component.ClickMarkerComponent.Kind()); ok {
		m, _ := ecs.Get(s.ecs, e, component.ClickMarkerComponent.Kind())
		snap.Marker = &MarkerSnapshot{
			Position: world.PixelCoord{X: m.X, Y: m.Y},
			Alpha:    system.MarkerAlpha(*m),
		}
	}

	if e, ok := ecs.First(s.ecs, component.CameraComponent.Kind()); ok {
		cam, _ := ecs.Get(s.ecs, e, component.CameraComponent.Kind())
		snap.Camera = CameraSnapshot{X: cam.X, Y: cam.Y, Zoom: cam.Zoom}
	}

	if p := s.Companion(); p != nil {
		snap.Trail = p.Trail().Points()
		snap.Target, snap.HasTarget = p.Target()
	}
	return snap
}
