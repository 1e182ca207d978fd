// Package motion walks a single agent along planned paths and couples its
// movement to a facing-aware walk cycle.
package motion

import (
	"github.com/milk9111/wayfarer/nav"
	"github.com/milk9111/wayfarer/world"
)

const (
	DefaultSpeed         = 100.0
	DefaultArriveEpsilon = 2.0
	DefaultFrameInterval = 0.2
)

// Config tunes one controller.
type Config struct {
	Speed         float64 // pixels per second
	ArriveEpsilon float64 // pixels
	FrameInterval float64 // seconds per walk-cycle frame
}

func DefaultConfig() Config {
	return Config{Speed: DefaultSpeed, ArriveEpsilon: DefaultArriveEpsilon, FrameInterval: DefaultFrameInterval}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Speed <= 0 {
		c.Speed = d.Speed
	}
	if c.ArriveEpsilon <= 0 {
		c.ArriveEpsilon = d.ArriveEpsilon
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = d.FrameInterval
	}
	return c
}

// Planner computes paths. *nav.Finder satisfies it.
type Planner interface {
	FindPath(w *world.World, from, to world.PixelCoord) (nav.Path, bool)
}

// State is an agent's motion state. Path is nil whenever Moving is false.
type State struct {
	Position world.PixelCoord
	Facing   Facing
	Moving   bool
	Path     []world.PixelCoord
	Cursor   int
}

// Controller owns one agent's State. It is not safe for concurrent use; the
// frame loop is its only caller.
type Controller struct {
	cfg     Config
	planner Planner
	worlds  world.Provider
	state   State
	anim    Animation
}

func NewController(pos world.PixelCoord, facing Facing, cfg Config, planner Planner, worlds world.Provider) *Controller {
	return &Controller{
		cfg:     cfg.withDefaults(),
		planner: planner,
		worlds:  worlds,
		state:   State{Position: pos, Facing: facing},
	}
}

// MoveTo cancels any walk in progress and heads for dest. It reports false,
// leaving the agent idle, when no path exists.
func (c *Controller) MoveTo(dest world.PixelCoord) bool {
	c.cancel()
	path, ok := c.plan(dest)
	if !ok {
		return false
	}
	c.install(path.Waypoints, false)
	return true
}

// Steer replaces the current path like MoveTo, but an agent already walking
// in the new leg's direction keeps its stride. A failed plan stops the agent.
func (c *Controller) Steer(dest world.PixelCoord) bool {
	path, ok := c.plan(dest)
	if !ok {
		c.cancel()
		return false
	}
	c.install(path.Waypoints, c.state.Moving)
	return true
}

// Stop cancels any walk in progress and shows the stand pose.
func (c *Controller) Stop() {
	c.cancel()
}

// Place teleports the agent, cancelling any walk.
func (c *Controller) Place(pos world.PixelCoord) {
	c.cancel()
	c.state.Position = pos
}

// Update advances the agent by dt seconds. Movement left over after reaching
// a waypoint carries into the next leg.
func (c *Controller) Update(dt float64) {
	if !c.state.Moving || dt <= 0 {
		return
	}

	budget := c.cfg.Speed * dt
	for budget > 0 && c.state.Moving {
		target := c.state.Path[c.state.Cursor]
		pos := c.state.Position.Vec()
		dist := pos.Distance(target.Vec())
		if dist <= budget || dist < c.cfg.ArriveEpsilon {
			c.state.Position = target
			budget -= dist
			c.state.Cursor++
			c.beginLeg()
			continue
		}
		c.state.Position = world.FromVec(pos.LerpConst(target.Vec(), budget))
		budget = 0
	}

	if c.state.Moving {
		c.anim.Advance(dt, c.cfg.FrameInterval)
	}
}

// State returns a snapshot. Path is a copy, so callers may keep or modify
// it without touching the active route.
func (c *Controller) State() State {
	st := c.state
	st.Path = append([]world.PixelCoord(nil), c.state.Path...)
	return st
}

func (c *Controller) Position() world.PixelCoord {
	return c.state.Position
}

func (c *Controller) Facing() Facing {
	return c.state.Facing
}

func (c *Controller) Moving() bool {
	return c.state.Moving
}

// Animation returns the walk-cycle counter.
func (c *Controller) Animation() Animation {
	return c.anim
}

// Pose is the stand pose while idle, otherwise the walk-cycle frame.
func (c *Controller) Pose() Pose {
	if !c.state.Moving {
		return Stand
	}
	return c.anim.Pose()
}

// FrameKey names the sprite frame to draw, e.g. "left-step".
func (c *Controller) FrameKey() string {
	return c.state.Facing.String() + "-" + c.Pose().String()
}

func (c *Controller) plan(dest world.PixelCoord) (nav.Path, bool) {
	if c.planner == nil || c.worlds == nil {
		return nav.Path{}, false
	}
	return c.planner.FindPath(c.worlds.Current(), c.state.Position, dest)
}

// install swaps in a new path as one step so no frame ever sees the new
// path with the old cursor or the old stride.
func (c *Controller) install(waypoints []world.PixelCoord, keepStride bool) {
	c.state.Path = waypoints
	c.state.Cursor = 0
	// the first waypoint is the cell underfoot; heading back to its centre
	// would make a replanning agent stutter
	if len(waypoints) > 1 {
		c.state.Cursor = 1
	}
	c.state.Moving = true
	if !keepStride {
		c.anim.Reset()
	}
	c.beginLeg()
}

// beginLeg skips waypoints already underfoot, finishes an exhausted path and
// turns toward the next waypoint, restarting the stride on a turn.
func (c *Controller) beginLeg() {
	for c.state.Cursor < len(c.state.Path) &&
		c.state.Position.DistanceTo(c.state.Path[c.state.Cursor]) < c.cfg.ArriveEpsilon {
		c.state.Cursor++
	}
	if c.state.Cursor >= len(c.state.Path) {
		c.cancel()
		return
	}

	target := c.state.Path[c.state.Cursor]
	facing := FacingToward(target.X-c.state.Position.X, target.Y-c.state.Position.Y, c.state.Facing)
	if facing != c.state.Facing {
		c.state.Facing = facing
		c.anim.Reset()
	}
}

func (c *Controller) cancel() {
	c.state.Moving = false
	c.state.Path = nil
	c.state.Cursor = 0
	c.anim.Reset()
}
