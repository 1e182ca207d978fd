// Package session runs one navigation session: a single immutable world, the
// agents walking it and the per-frame system order. Moving to another world
// means building a new Session.
package session

import (
	"errors"

	"github.com/milk9111/wayfarer/companion"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/ecs/system"
	"github.com/milk9111/wayfarer/input"
	"github.com/milk9111/wayfarer/motion"
	"github.com/milk9111/wayfarer/nav"
	"github.com/milk9111/wayfarer/world"
)

var ErrNoWorld = errors.New("session: no world")

type Session struct {
	cfg       Config
	world     *world.World
	ecs       *ecs.World
	scheduler *ecs.Scheduler
	leader    ecs.Entity
	companion ecs.Entity
	frame     uint64
	events    []ecs.Event
}

// New places the leader on the world's spawn and the companion on the
// nearest walkable neighbour. A nil planner gets a nav.Finder built from cfg.
// With cfg.View set the session runs on a copy of w centred in that view.
func New(w *world.World, cfg Config, planner motion.Planner, source input.Source) (*Session, error) {
	if w == nil {
		return nil, ErrNoWorld
	}
	if cfg.View.Width > 0 && cfg.View.Height > 0 {
		w = w.WithOrigin(world.CenteredOrigin(w, cfg.View.Width, cfg.View.Height))
	}
	if cfg.DT <= 0 {
		cfg.DT = DefaultConfig().DT
	}
	if planner == nil {
		planner = nav.NewFinder(nav.WithMaxExpansions(cfg.MaxExpansions))
	}

	s := &Session{cfg: cfg, world: w, ecs: ecs.NewWorld()}

	spawn := w.ToPixel(w.Spawn)
	s.leader = ecs.CreateEntity(s.ecs)
	leaderMotion := motion.NewController(spawn, motion.Front, cfg.Leader.Motion, planner, s)
	if err := ecs.Add(s.ecs, s.leader, component.AgentComponent.Kind(), &component.Agent{
		Name:   cfg.Leader.Name,
		Sprite: cfg.Leader.Sprite,
		Motion: leaderMotion,
	}); err != nil {
		return nil, err
	}
	if err := ecs.Add(s.ecs, s.leader, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return nil, err
	}

	if cfg.CompanionEnabled {
		start := w.ToPixel(companionCell(w, w.Spawn))
		ctrl := motion.NewController(start, motion.Front, cfg.Companion.Motion, planner, s)
		pursuit := companion.New(ctrl, cfg.Pursuit)
		pursuit.Seed(spawn)

		s.companion = ecs.CreateEntity(s.ecs)
		if err := ecs.Add(s.ecs, s.companion, component.AgentComponent.Kind(), &component.Agent{
			Name:   cfg.Companion.Name,
			Sprite: cfg.Companion.Sprite,
			Motion: ctrl,
		}); err != nil {
			return nil, err
		}
		if err := ecs.Add(s.ecs, s.companion, component.CompanionComponent.Kind(), &component.Companion{
			Leader:  uint64(s.leader),
			Pursuit: pursuit,
		}); err != nil {
			return nil, err
		}
	}

	camera := ecs.CreateEntity(s.ecs)
	if err := ecs.Add(s.ecs, camera, component.CameraComponent.Kind(), &component.Camera{
		Zoom:       cfg.Camera.Zoom,
		Smoothness: cfg.Camera.Smoothness,
	}); err != nil {
		return nil, err
	}

	s.scheduler = ecs.NewScheduler(
		system.NewInputSystem(source, cfg.MarkerLifetime),
		system.NewMotionSystem(cfg.DT),
		system.NewCompanionSystem(cfg.DT),
		system.NewMarkerSystem(cfg.DT),
		system.NewCameraSystem(),
	)
	system.NewCameraSystem().Update(s.ecs)
	return s, nil
}

// companionOffsets is the order in which cells around the spawn are tried:
// behind and beside the leader first.
var companionOffsets = [...]world.GridCoord{
	{X: -1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1},
	{X: -1, Y: 1}, {X: 1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1},
}

func companionCell(w *world.World, spawn world.GridCoord) world.GridCoord {
	for _, off := range companionOffsets {
		c := world.GridCoord{X: spawn.X + off.X, Y: spawn.Y + off.Y}
		if w.IsWalkable(c) {
			return c
		}
	}
	return spawn
}

// Update advances the session by one frame: input, then the leader, then
// the companion.
func (s *Session) Update() {
	s.frame++
	s.scheduler.Update(s.ecs)
	s.events = s.ecs.Events().Drain()
}

// Current returns the session's world. Session is the world.Provider for
// everything it owns.
func (s *Session) Current() *world.World {
	if s == nil {
		return nil
	}
	return s.world
}

// Events returns what the last Update raised.
func (s *Session) Events() []ecs.Event {
	return s.events
}

func (s *Session) Frame() uint64 {
	return s.frame
}

func (s *Session) Config() Config {
	return s.cfg
}

// Leader returns the player's controller.
func (s *Session) Leader() *motion.Controller {
	a, ok := ecs.Get(s.ecs, s.leader, component.AgentComponent.Kind())
	if !ok {
		return nil
	}
	return a.Motion
}

// Companion returns the companion's pursuit, or nil when disabled.
func (s *Session) Companion() *companion.Pursuit {
	c, ok := ecs.Get(s.ecs, s.companion, component.CompanionComponent.Kind())
	if !ok {
		return nil
	}
	return c.Pursuit
}
